package loaners

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/SeanMWG/inventory-app/internal/auditlog"
	"github.com/SeanMWG/inventory-app/internal/repository"
	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
)

// CheckoutStore is the storage surface the state machine drives. All
// methods run inside the transaction the service opens.
type CheckoutStore interface {
	GetItemForUpdate(tx *goqu.TxDatabase, inventoryID int) (*models.InventoryItem, error)
	SetLoanerFlag(tx *goqu.TxDatabase, inventoryID int, isLoaner bool) error
	HasOpenCheckout(tx *goqu.TxDatabase, inventoryID int) (bool, error)
	InsertCheckout(tx *goqu.TxDatabase, req models.CheckoutRequest) (int, error)
	GetCheckoutForUpdate(tx *goqu.TxDatabase, checkoutID int) (*models.LoanerCheckout, error)
	CloseCheckout(tx *goqu.TxDatabase, checkoutID int) error
	ListAvailable() ([]models.InventoryRow, error)
	ListCheckedOut() ([]models.CheckedOutLoaner, error)
}

// AuditRecorder appends one change record within the transaction.
type AuditRecorder interface {
	Record(tx *goqu.TxDatabase, entry auditlog.Entry) error
}

type txRunner func(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error

// LoanerService guards the available ⇄ checked-out transitions. Every
// transition locks the inventory row, re-checks its precondition, and
// writes its audit entry before committing, so two concurrent checkout
// requests cannot both pass the availability check.
type LoanerService struct {
	store CheckoutStore
	audit AuditRecorder
	runTx txRunner
}

func NewLoanerService(repo *repository.Repository, store CheckoutStore, audit AuditRecorder) *LoanerService {
	return &LoanerService{
		store: store,
		audit: audit,
		runTx: func(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(ctx, repo.GoquDBWrapper, fn)
		},
	}
}

// MarkAsLoaner moves an item from NOT_LOANER to AVAILABLE.
func (s *LoanerService) MarkAsLoaner(ctx context.Context, inventoryID int, changedBy string) error {
	return s.runTx(ctx, func(tx *goqu.TxDatabase) error {
		item, err := s.store.GetItemForUpdate(tx, inventoryID)
		if err != nil {
			return err
		}
		if item.IsLoaner {
			return apperrors.NewConflict("item is already a loaner")
		}

		if err := s.store.SetLoanerFlag(tx, inventoryID, true); err != nil {
			return err
		}

		oldValue, newValue := "0", "1"
		return s.audit.Record(tx, auditlog.Entry{
			ActionType: models.ActionUpdate,
			AssetTag:   item.AssetTag,
			FieldName:  "is_loaner",
			OldValue:   &oldValue,
			NewValue:   &newValue,
			ChangedBy:  changedBy,
		})
	})
}

// Checkout moves an item from AVAILABLE to CHECKED_OUT. The item must
// exist, be loaner-flagged, and have no outstanding checkout; the
// conditions are evaluated under the row lock and every failure
// answers the same "not available" error.
func (s *LoanerService) Checkout(ctx context.Context, req models.CheckoutRequest, changedBy string) (int, error) {
	var checkoutID int

	err := s.runTx(ctx, func(tx *goqu.TxDatabase) error {
		item, err := s.store.GetItemForUpdate(tx, req.InventoryID)
		if err != nil {
			// A missing item reads the same as an unavailable one.
			var notFound *apperrors.NotFoundError
			if errors.As(err, &notFound) {
				return apperrors.NewInvalidState("item is not available for checkout")
			}
			return err
		}
		if !item.IsLoaner {
			return apperrors.NewInvalidState("item is not available for checkout")
		}

		open, err := s.store.HasOpenCheckout(tx, req.InventoryID)
		if err != nil {
			return err
		}
		if open {
			return apperrors.NewInvalidState("item is not available for checkout")
		}

		if checkoutID, err = s.store.InsertCheckout(tx, req); err != nil {
			return err
		}

		oldValue, newValue := "available", "checked_out"
		return s.audit.Record(tx, auditlog.Entry{
			ActionType: models.ActionCheckout,
			AssetTag:   item.AssetTag,
			FieldName:  "loaner_status",
			OldValue:   &oldValue,
			NewValue:   &newValue,
			ChangedBy:  changedBy,
		})
	})
	if err != nil {
		return 0, err
	}

	return checkoutID, nil
}

// Checkin moves an item from CHECKED_OUT back to AVAILABLE. A missing
// or already-closed checkout fails without changing anything, so a
// second check-in on the same id is rejected cleanly.
func (s *LoanerService) Checkin(ctx context.Context, checkoutID int, changedBy string) error {
	return s.runTx(ctx, func(tx *goqu.TxDatabase) error {
		checkout, err := s.store.GetCheckoutForUpdate(tx, checkoutID)
		if err != nil {
			var notFound *apperrors.NotFoundError
			if errors.As(err, &notFound) {
				return apperrors.NewInvalidState("invalid checkout or already checked in")
			}
			return err
		}
		if checkout.CheckinDate != nil {
			return apperrors.NewInvalidState("invalid checkout or already checked in")
		}

		item, err := s.store.GetItemForUpdate(tx, checkout.InventoryID)
		if err != nil {
			return err
		}

		if err := s.store.CloseCheckout(tx, checkoutID); err != nil {
			return err
		}

		oldValue, newValue := "checked_out", "available"
		return s.audit.Record(tx, auditlog.Entry{
			ActionType: models.ActionCheckin,
			AssetTag:   item.AssetTag,
			FieldName:  "loaner_status",
			OldValue:   &oldValue,
			NewValue:   &newValue,
			ChangedBy:  changedBy,
		})
	})
}

func (s *LoanerService) ListAvailable() ([]models.InventoryRow, error) {
	return s.store.ListAvailable()
}

func (s *LoanerService) ListCheckedOut() ([]models.CheckedOutLoaner, error) {
	return s.store.ListCheckedOut()
}
