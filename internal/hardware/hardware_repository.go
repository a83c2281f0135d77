package hardware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/SeanMWG/inventory-app/internal/auditlog"
	"github.com/SeanMWG/inventory-app/internal/repository"
	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
)

type HardwareRepository struct {
	Repository *repository.Repository
	audit      *auditlog.AuditLogRepository
}

func NewHardwareRepository(r *repository.Repository, audit *auditlog.AuditLogRepository) *HardwareRepository {
	return &HardwareRepository{Repository: r, audit: audit}
}

var inventoryColumns = []interface{}{
	"inventory_id", "asset_tag", "location_id", "asset_type", "model",
	"serial_number", "notes", "assigned_to", "date_assigned",
	"date_decommissioned", "is_loaner",
}

// Search returns a filtered, paginated view over inventory joined with
// the location directory. Ordering is site, room, asset tag.
func (r *HardwareRepository) Search(filters SearchFilters) (*models.PaginatedInventory, error) {
	if filters.Page < 1 {
		return nil, apperrors.NewValidation("page must be >= 1")
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	base := r.Repository.GoquDBWrapper.
		From(goqu.T("inventory").As("i")).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"i.location_id": goqu.I("l.location_id")}),
		)
	for _, condition := range buildConditions(filters) {
		base = base.Where(condition)
	}

	var totalItems int
	if _, err := base.Select(goqu.COUNT(goqu.I("i.inventory_id"))).Executor().ScanVal(&totalItems); err != nil {
		return nil, apperrors.WrapDBError("unable to count inventory", err)
	}

	items := []models.InventoryRow{}
	query := base.Select(
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
		Order(
			goqu.I("l.site_name").Asc(),
			goqu.I("l.room_number").Asc(),
			goqu.I("i.asset_tag").Asc(),
		).
		Offset(uint((filters.Page - 1) * pageSize)).
		Limit(uint(pageSize))

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, apperrors.WrapDBError("unable to fetch inventory", err)
	}

	totalPages := pageCount(totalItems, pageSize)

	return &models.PaginatedInventory{
		Items:       items,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: filters.Page,
	}, nil
}

func (r *HardwareRepository) GetByAssetTag(assetTag string) (*models.InventoryItem, error) {
	var item models.InventoryItem

	query := r.Repository.GoquDBWrapper.
		Select(inventoryColumns...).
		From("inventory").
		Where(goqu.Ex{"asset_tag": assetTag})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, apperrors.WrapDBError("unable to fetch inventory item", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("asset %s not found", assetTag)
	}

	return &item, nil
}

// PersistItem creates one inventory row plus one INSERT audit entry per
// populated field, all inside one transaction.
func (r *HardwareRepository) PersistItem(ctx context.Context, req models.HardwareRequest, changedBy string) (*models.InventoryItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var item *models.InventoryItem
	err := repository.WithTransaction(ctx, r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		item, err = r.persistItemTx(tx, req, changedBy)
		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// BulkPersist inserts a validated stream of rows in one transaction.
// Rows failing validation are reported per-row and skipped; a database
// failure aborts the whole batch.
func (r *HardwareRepository) BulkPersist(ctx context.Context, reqs []models.HardwareRequest, changedBy string) ([]models.InventoryItem, []string, error) {
	var created []models.InventoryItem
	var rowErrors []string

	valid := make([]models.HardwareRequest, 0, len(reqs))
	for i, req := range reqs {
		if err := validateRequest(req); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		valid = append(valid, req)
	}

	err := repository.WithTransaction(ctx, r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		for _, req := range valid {
			item, err := r.persistItemTx(tx, req, changedBy)
			if err != nil {
				return err
			}
			created = append(created, *item)
		}
		return nil
	})
	if err != nil {
		return nil, rowErrors, err
	}

	return created, rowErrors, nil
}

func (r *HardwareRepository) persistItemTx(tx *goqu.TxDatabase, req models.HardwareRequest, changedBy string) (*models.InventoryItem, error) {
	item := models.InventoryItem{
		AssetTag:     req.AssetTag,
		LocationID:   req.LocationID,
		AssetType:    req.AssetType,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Notes:        req.Notes,
		AssignedTo:   req.AssignedTo,
		IsLoaner:     req.IsLoaner,
	}

	record := goqu.Record{
		"asset_tag":     item.AssetTag,
		"location_id":   item.LocationID,
		"asset_type":    item.AssetType,
		"model":         item.Model,
		"serial_number": item.SerialNumber,
		"notes":         item.Notes,
		"assigned_to":   item.AssignedTo,
		"is_loaner":     item.IsLoaner,
	}
	// Rows arriving with a bare site name keep it in the legacy column
	// until the location backfill links them to the directory.
	if req.LocationID == nil && req.SiteName != "" {
		record["site_name"] = req.SiteName
	}

	query := tx.Insert("inventory").
		Rows(record).
		Returning("inventory_id")

	if _, err := query.Executor().ScanVal(&item.ID); err != nil {
		return nil, apperrors.WrapDBError("failed to insert inventory record", err)
	}

	for _, field := range insertAuditFields(item) {
		entry := auditlog.Entry{
			ActionType: models.ActionInsert,
			AssetTag:   item.AssetTag,
			FieldName:  field.name,
			NewValue:   field.value,
			ChangedBy:  changedBy,
		}
		if err := r.audit.Record(tx, entry); err != nil {
			return nil, err
		}
	}

	return &item, nil
}

// UpdateItem applies a partial patch against a locked snapshot and
// records one UPDATE audit entry per field that actually changed.
func (r *HardwareRepository) UpdateItem(ctx context.Context, inventoryID int, patch models.HardwarePatch, changedBy string) (*models.InventoryItem, error) {
	var updated models.InventoryItem

	err := repository.WithTransaction(ctx, r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var current models.InventoryItem
		found, err := tx.Select(inventoryColumns...).
			From("inventory").
			Where(goqu.Ex{"inventory_id": inventoryID}).
			ForUpdate(goqu.Wait).
			Executor().ScanStruct(&current)
		if err != nil {
			return apperrors.WrapDBError("unable to fetch inventory item", err)
		}
		if !found {
			return apperrors.NewNotFound("inventory item %d not found", inventoryID)
		}

		updates, changes := diffItem(current, patch, changedBy)

		if len(updates) == 0 {
			updated = current
			return nil
		}

		query := tx.Update("inventory").
			Set(updates).
			Where(goqu.Ex{"inventory_id": inventoryID}).
			Returning(inventoryColumns...)

		if _, err := query.Executor().ScanStruct(&updated); err != nil {
			return apperrors.WrapDBError("failed to update inventory record", err)
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

func validateRequest(req models.HardwareRequest) error {
	switch {
	case req.AssetTag == "":
		return apperrors.NewValidation("asset_tag is required")
	case req.AssetType == "":
		return apperrors.NewValidation("asset_type is required")
	case req.Model == "":
		return apperrors.NewValidation("model is required")
	case req.SerialNumber == "":
		return apperrors.NewValidation("serial_number is required")
	case req.LocationID == nil && req.SiteName == "":
		return apperrors.NewValidation("location_id or site_name is required")
	}
	return nil
}

type auditField struct {
	name  string
	value *string
}

// insertAuditFields lists the populated fields of a fresh row, one
// INSERT audit entry each.
func insertAuditFields(item models.InventoryItem) []auditField {
	fields := []auditField{
		{"asset_tag", strPtr(item.AssetTag)},
		{"asset_type", strPtr(item.AssetType)},
		{"model", strPtr(item.Model)},
		{"serial_number", strPtr(item.SerialNumber)},
		{"is_loaner", strPtr(boolText(item.IsLoaner))},
	}
	if item.LocationID != nil {
		fields = append(fields, auditField{"location_id", intText(item.LocationID)})
	}
	if item.Notes != nil {
		fields = append(fields, auditField{"notes", item.Notes})
	}
	if item.AssignedTo != nil {
		fields = append(fields, auditField{"assigned_to", item.AssignedTo})
	}
	return fields
}

func strPtr(v string) *string { return &v }

func intText(v *int) *string {
	if v == nil {
		return nil
	}
	s := strconv.Itoa(*v)
	return &s
}

func timeText(v *time.Time) *string {
	if v == nil {
		return nil
	}
	s := v.Format("2006-01-02")
	return &s
}

func boolText(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func equalValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
