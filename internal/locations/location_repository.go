package locations

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/SeanMWG/inventory-app/internal/auditlog"
	"github.com/SeanMWG/inventory-app/internal/repository"
	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
)

type LocationRepository struct {
	Repository *repository.Repository
	audit      *auditlog.AuditLogRepository
}

func NewLocationRepository(r *repository.Repository, audit *auditlog.AuditLogRepository) *LocationRepository {
	return &LocationRepository{Repository: r, audit: audit}
}

var locationColumns = []interface{}{"location_id", "site_name", "room_number", "room_name", "room_type"}

func (r *LocationRepository) GetLocations() ([]models.Location, error) {
	var locations []models.Location

	query := r.Repository.GoquDBWrapper.
		Select(locationColumns...).
		From("locations").
		Order(goqu.I("site_name").Asc(), goqu.I("room_number").Asc())

	if err := query.Executor().ScanStructs(&locations); err != nil {
		return nil, apperrors.WrapDBError("unable to fetch locations", err)
	}

	return locations, nil
}

func (r *LocationRepository) GetLocation(locationID int) (*models.Location, error) {
	var location models.Location

	query := r.Repository.GoquDBWrapper.
		Select(locationColumns...).
		From("locations").
		Where(goqu.Ex{"location_id": locationID})

	found, err := query.Executor().ScanStruct(&location)
	if err != nil {
		return nil, apperrors.WrapDBError("unable to fetch location", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("location %d not found", locationID)
	}

	return &location, nil
}

// Validate is a pure lookup used to pre-check a (site, room) pair
// before creating inventory rows that reference it.
func (r *LocationRepository) Validate(siteName, roomNumber string) (models.ValidateLocationResponse, error) {
	var locationID int

	query := r.Repository.GoquDBWrapper.
		Select("location_id").
		From("locations").
		Where(goqu.Ex{"site_name": siteName, "room_number": roomNumber})

	found, err := query.Executor().ScanVal(&locationID)
	if err != nil {
		return models.ValidateLocationResponse{}, apperrors.WrapDBError("unable to validate location", err)
	}
	if !found {
		return models.ValidateLocationResponse{Exists: false}, nil
	}

	return models.ValidateLocationResponse{Exists: true, LocationID: &locationID}, nil
}

// PersistLocation creates a location and its CREATE audit entry inside
// one transaction. Duplicate (site, room) pairs are rejected.
func (r *LocationRepository) PersistLocation(ctx context.Context, req models.LocationRequest, changedBy string) (*models.Location, error) {
	location := models.Location{
		SiteName:   req.SiteName,
		RoomNumber: req.RoomNumber,
		RoomName:   req.RoomName,
		RoomType:   req.RoomType,
	}

	err := repository.WithTransaction(ctx, r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var existingID int
		found, err := tx.Select("location_id").
			From("locations").
			Where(goqu.Ex{"site_name": req.SiteName, "room_number": req.RoomNumber}).
			Executor().ScanVal(&existingID)
		if err != nil {
			return apperrors.WrapDBError("unable to check for existing location", err)
		}
		if found {
			return apperrors.NewConflict("location already exists")
		}

		query := tx.Insert("locations").
			Rows(goqu.Record{
				"site_name":   req.SiteName,
				"room_number": req.RoomNumber,
				"room_name":   req.RoomName,
				"room_type":   req.RoomType,
			}).
			Returning("location_id")

		if _, err := query.Executor().ScanVal(&location.ID); err != nil {
			return apperrors.WrapDBError("failed to insert location record", err)
		}

		newValue := fmt.Sprintf("%s - %s", req.SiteName, req.RoomNumber)
		return r.audit.Record(tx, auditlog.Entry{
			ActionType: models.ActionCreate,
			AssetTag:   auditlog.LocationTag(location.ID),
			FieldName:  "location",
			NewValue:   &newValue,
			ChangedBy:  changedBy,
		})
	})
	if err != nil {
		return nil, err
	}

	return &location, nil
}

// UpdateLocation applies a partial patch and records one UPDATE audit
// entry per field whose value actually changed.
func (r *LocationRepository) UpdateLocation(ctx context.Context, locationID int, patch models.LocationPatch, changedBy string) (*models.Location, error) {
	var updated models.Location

	err := repository.WithTransaction(ctx, r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var current models.Location
		found, err := tx.Select(locationColumns...).
			From("locations").
			Where(goqu.Ex{"location_id": locationID}).
			ForUpdate(goqu.Wait).
			Executor().ScanStruct(&current)
		if err != nil {
			return apperrors.WrapDBError("unable to fetch location", err)
		}
		if !found {
			return apperrors.NewNotFound("location %d not found", locationID)
		}

		updates := goqu.Record{}
		changes := []auditlog.Entry{}
		applyField := func(field string, oldValue string, newValue *string) {
			if newValue == nil || *newValue == oldValue {
				return
			}
			updates[field] = *newValue
			old := oldValue
			changes = append(changes, auditlog.Entry{
				ActionType: models.ActionUpdate,
				AssetTag:   auditlog.LocationTag(locationID),
				FieldName:  field,
				OldValue:   &old,
				NewValue:   newValue,
				ChangedBy:  changedBy,
			})
		}

		applyField("site_name", current.SiteName, patch.SiteName)
		applyField("room_number", current.RoomNumber, patch.RoomNumber)
		applyField("room_name", current.RoomName, patch.RoomName)
		applyField("room_type", current.RoomType, patch.RoomType)

		if len(updates) == 0 {
			return apperrors.NewValidation("no fields to update")
		}

		query := tx.Update("locations").
			Set(updates).
			Where(goqu.Ex{"location_id": locationID}).
			Returning(locationColumns...)

		if _, err := query.Executor().ScanStruct(&updated); err != nil {
			return apperrors.WrapDBError("failed to update location", err)
		}

		for _, change := range changes {
			if err := r.audit.Record(tx, change); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// RemoveLocation deletes an unreferenced location and records a single
// DELETE audit entry. Referenced locations are rejected as in-use.
func (r *LocationRepository) RemoveLocation(ctx context.Context, locationID int, changedBy string) error {
	return repository.WithTransaction(ctx, r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var current models.Location
		found, err := tx.Select(locationColumns...).
			From("locations").
			Where(goqu.Ex{"location_id": locationID}).
			ForUpdate(goqu.Wait).
			Executor().ScanStruct(&current)
		if err != nil {
			return apperrors.WrapDBError("unable to fetch location", err)
		}
		if !found {
			return apperrors.NewNotFound("location %d not found", locationID)
		}

		var refCount int
		if _, err := tx.Select(goqu.COUNT("inventory_id")).
			From("inventory").
			Where(goqu.Ex{"location_id": locationID}).
			Executor().ScanVal(&refCount); err != nil {
			return apperrors.WrapDBError("unable to check location references", err)
		}
		if refCount > 0 {
			return apperrors.NewConflict("cannot delete location that has inventory items assigned to it")
		}

		if _, err := tx.Delete("locations").
			Where(goqu.Ex{"location_id": locationID}).
			Executor().Exec(); err != nil {
			return apperrors.WrapDBError("failed to delete location", err)
		}

		oldValue := fmt.Sprintf("%s - %s", current.SiteName, current.RoomNumber)
		return r.audit.Record(tx, auditlog.Entry{
			ActionType: models.ActionDelete,
			AssetTag:   auditlog.LocationTag(locationID),
			FieldName:  "location",
			OldValue:   &oldValue,
			ChangedBy:  changedBy,
		})
	})
}
