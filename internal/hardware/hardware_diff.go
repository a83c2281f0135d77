package hardware

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/SeanMWG/inventory-app/internal/auditlog"
	"github.com/SeanMWG/inventory-app/pkg/models"
)

func pageCount(totalItems, pageSize int) int {
	return (totalItems + pageSize - 1) / pageSize
}

// diffItem compares a patch against the current row and produces the
// column updates plus one audit entry per field whose value actually
// changes. Fields left nil in the patch are skipped; a field set to the
// value it already holds produces neither an update nor an audit entry.
func diffItem(current models.InventoryItem, patch models.HardwarePatch, changedBy string) (goqu.Record, []auditlog.Entry) {
	updates := goqu.Record{}
	var changes []auditlog.Entry
	applyChange := func(field string, oldValue, newValue *string, dbValue interface{}) {
		if equalValue(oldValue, newValue) {
			return
		}
		updates[field] = dbValue
		changes = append(changes, auditlog.Entry{
			ActionType: models.ActionUpdate,
			AssetTag:   current.AssetTag,
			FieldName:  field,
			OldValue:   oldValue,
			NewValue:   newValue,
			ChangedBy:  changedBy,
		})
	}

	if patch.AssetTag != nil {
		applyChange("asset_tag", strPtr(current.AssetTag), patch.AssetTag, *patch.AssetTag)
	}
	if patch.LocationID != nil {
		applyChange("location_id", intText(current.LocationID), intText(patch.LocationID), *patch.LocationID)
	}
	if patch.AssetType != nil {
		applyChange("asset_type", strPtr(current.AssetType), patch.AssetType, *patch.AssetType)
	}
	if patch.Model != nil {
		applyChange("model", strPtr(current.Model), patch.Model, *patch.Model)
	}
	if patch.SerialNumber != nil {
		applyChange("serial_number", strPtr(current.SerialNumber), patch.SerialNumber, *patch.SerialNumber)
	}
	if patch.Notes != nil {
		applyChange("notes", current.Notes, patch.Notes, *patch.Notes)
	}
	if patch.AssignedTo != nil {
		applyChange("assigned_to", current.AssignedTo, patch.AssignedTo, *patch.AssignedTo)
	}
	if patch.DateAssigned != nil {
		applyChange("date_assigned", timeText(current.DateAssigned), timeText(patch.DateAssigned), *patch.DateAssigned)
	}
	if patch.DateDecommissioned != nil {
		applyChange("date_decommissioned", timeText(current.DateDecommissioned), timeText(patch.DateDecommissioned), *patch.DateDecommissioned)
	}

	return updates, changes
}
