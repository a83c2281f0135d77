package auditlog

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/SeanMWG/inventory-app/internal/repository"
	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
)

// Entry is one pending audit record. ChangedAt is assigned by the
// database at insert time.
type Entry struct {
	ActionType string
	AssetTag   string
	FieldName  string
	OldValue   *string
	NewValue   *string
	ChangedBy  string
	Notes      *string
}

// LocationTag builds the synthetic subject reference used for location
// events, which have no real asset tag.
func LocationTag(locationID int) string {
	return fmt.Sprintf("LOC_%d", locationID)
}

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

// Record appends one entry within the caller's transaction. The audit
// trail is compliance-relevant, so a failed write propagates and rolls
// back the mutation it describes.
func (r *AuditLogRepository) Record(tx *goqu.TxDatabase, entry Entry) error {
	query := tx.Insert("audit_log").
		Rows(goqu.Record{
			"action_type": entry.ActionType,
			"asset_tag":   entry.AssetTag,
			"field_name":  entry.FieldName,
			"old_value":   entry.OldValue,
			"new_value":   entry.NewValue,
			"changed_by":  entry.ChangedBy,
			"notes":       entry.Notes,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log entry: %w", err)
	}

	return nil
}

// GetByAssetTag returns the change history for one subject, newest
// first.
func (r *AuditLogRepository) GetByAssetTag(assetTag string) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry

	query := r.repository.GoquDBWrapper.
		Select("id", "changed_at", "action_type", "asset_tag", "field_name", "old_value", "new_value", "changed_by", "notes").
		From("audit_log").
		Where(goqu.Ex{"asset_tag": assetTag}).
		Order(goqu.I("changed_at").Desc())

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, apperrors.WrapDBError("unable to fetch audit log", err)
	}

	return entries, nil
}
