package loaners

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/SeanMWG/inventory-app/internal/repository"
	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
)

type LoanerRepository struct {
	Repository *repository.Repository
}

func NewLoanerRepository(r *repository.Repository) *LoanerRepository {
	return &LoanerRepository{Repository: r}
}

// GetItemForUpdate locks the inventory row for the rest of the
// transaction so concurrent state transitions serialize on it.
func (r *LoanerRepository) GetItemForUpdate(tx *goqu.TxDatabase, inventoryID int) (*models.InventoryItem, error) {
	var item models.InventoryItem

	query := tx.Select(
		"inventory_id", "asset_tag", "location_id", "asset_type", "model",
		"serial_number", "notes", "assigned_to", "date_assigned",
		"date_decommissioned", "is_loaner",
	).
		From("inventory").
		Where(goqu.Ex{"inventory_id": inventoryID}).
		ForUpdate(goqu.Wait)

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, apperrors.WrapDBError("unable to fetch inventory item", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("inventory item %d not found", inventoryID)
	}

	return &item, nil
}

func (r *LoanerRepository) SetLoanerFlag(tx *goqu.TxDatabase, inventoryID int, isLoaner bool) error {
	query := tx.Update("inventory").
		Set(goqu.Record{"is_loaner": isLoaner}).
		Where(goqu.Ex{"inventory_id": inventoryID})

	if _, err := query.Executor().Exec(); err != nil {
		return apperrors.WrapDBError("failed to update loaner flag", err)
	}

	return nil
}

// HasOpenCheckout reports whether the item currently has an
// outstanding checkout.
func (r *LoanerRepository) HasOpenCheckout(tx *goqu.TxDatabase, inventoryID int) (bool, error) {
	var count int

	query := tx.Select(goqu.COUNT("checkout_id")).
		From("loaner_checkouts").
		Where(goqu.Ex{
			"inventory_id": inventoryID,
			"checkin_date": nil,
		})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, apperrors.WrapDBError("unable to check for open checkout", err)
	}

	return count > 0, nil
}

func (r *LoanerRepository) InsertCheckout(tx *goqu.TxDatabase, req models.CheckoutRequest) (int, error) {
	var checkoutID int

	query := tx.Insert("loaner_checkouts").
		Rows(goqu.Record{
			"inventory_id":         req.InventoryID,
			"user_name":            req.UserName,
			"expected_return_date": req.ExpectedReturnDate,
			"notes":                req.Notes,
		}).
		Returning("checkout_id")

	if _, err := query.Executor().ScanVal(&checkoutID); err != nil {
		return 0, apperrors.WrapDBError("failed to insert checkout record", err)
	}

	return checkoutID, nil
}

func (r *LoanerRepository) GetCheckoutForUpdate(tx *goqu.TxDatabase, checkoutID int) (*models.LoanerCheckout, error) {
	var checkout models.LoanerCheckout

	query := tx.Select(
		"checkout_id", "inventory_id", "user_name", "checkout_date",
		"expected_return_date", "checkin_date", "notes",
	).
		From("loaner_checkouts").
		Where(goqu.Ex{"checkout_id": checkoutID}).
		ForUpdate(goqu.Wait)

	found, err := query.Executor().ScanStruct(&checkout)
	if err != nil {
		return nil, apperrors.WrapDBError("unable to fetch checkout record", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("checkout %d not found", checkoutID)
	}

	return &checkout, nil
}

// CloseCheckout stamps the check-in time. Checkout rows are historical
// records; this is their only mutation, ever.
func (r *LoanerRepository) CloseCheckout(tx *goqu.TxDatabase, checkoutID int) error {
	query := tx.Update("loaner_checkouts").
		Set(goqu.Record{"checkin_date": goqu.L("NOW()")}).
		Where(goqu.Ex{"checkout_id": checkoutID})

	if _, err := query.Executor().Exec(); err != nil {
		return apperrors.WrapDBError("failed to close checkout record", err)
	}

	return nil
}

// ListAvailable returns loaner-flagged items with no open checkout.
func (r *LoanerRepository) ListAvailable() ([]models.InventoryRow, error) {
	items := []models.InventoryRow{}

	openCheckouts := r.Repository.GoquDBWrapper.
		Select("inventory_id").
		From("loaner_checkouts").
		Where(goqu.Ex{"checkin_date": nil})

	query := r.Repository.GoquDBWrapper.
		From(goqu.T("inventory").As("i")).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"i.location_id": goqu.I("l.location_id")}),
		).
		Select(
			goqu.I("i.inventory_id").As("inventory_id"),
			goqu.I("l.site_name").As("site_name"),
			goqu.I("l.room_number").As("room_number"),
			goqu.I("l.room_name").As("room_name"),
			goqu.I("i.asset_tag").As("asset_tag"),
			goqu.I("i.asset_type").As("asset_type"),
			goqu.I("i.model").As("model"),
			goqu.I("i.serial_number").As("serial_number"),
			goqu.I("i.notes").As("notes"),
			goqu.I("i.assigned_to").As("assigned_to"),
			goqu.I("i.date_assigned").As("date_assigned"),
			goqu.I("i.date_decommissioned").As("date_decommissioned"),
			goqu.I("i.is_loaner").As("is_loaner"),
		).
		Where(
			goqu.I("i.is_loaner").IsTrue(),
			goqu.I("i.inventory_id").NotIn(openCheckouts),
		).
		Order(goqu.I("i.asset_tag").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, apperrors.WrapDBError("unable to fetch available loaners", err)
	}

	return items, nil
}

// ListCheckedOut returns outstanding checkouts joined with their
// inventory rows.
func (r *LoanerRepository) ListCheckedOut() ([]models.CheckedOutLoaner, error) {
	items := []models.CheckedOutLoaner{}

	query := r.Repository.GoquDBWrapper.
		From(goqu.T("loaner_checkouts").As("c")).
		Join(
			goqu.T("inventory").As("i"),
			goqu.On(goqu.Ex{"c.inventory_id": goqu.I("i.inventory_id")}),
		).
		Select(
			goqu.I("c.checkout_id").As("checkout_id"),
			goqu.I("c.inventory_id").As("inventory_id"),
			goqu.I("i.asset_tag").As("asset_tag"),
			goqu.I("i.asset_type").As("asset_type"),
			goqu.I("i.model").As("model"),
			goqu.I("i.serial_number").As("serial_number"),
			goqu.I("c.user_name").As("user_name"),
			goqu.I("c.checkout_date").As("checkout_date"),
			goqu.I("c.expected_return_date").As("expected_return_date"),
			goqu.I("c.notes").As("notes"),
		).
		Where(goqu.I("c.checkin_date").IsNull()).
		Order(goqu.I("c.checkout_date").Desc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, apperrors.WrapDBError("unable to fetch checked out loaners", err)
	}

	return items, nil
}
