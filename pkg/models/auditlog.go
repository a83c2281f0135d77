package models

import "time"

// Audit action types. CREATE and DELETE are used for location events,
// INSERT/UPDATE for inventory fields, CHECKOUT/CHECKIN for loaner
// transitions.
const (
	ActionInsert   = "INSERT"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionCreate   = "CREATE"
	ActionCheckout = "CHECKOUT"
	ActionCheckin  = "CHECKIN"
)

// AuditEntry is one immutable field-level change record. AssetTag is
// the subject reference; location events use a synthetic LOC_<id> tag.
type AuditEntry struct {
	ID         int       `json:"id" db:"id"`
	ChangedAt  time.Time `json:"changed_at" db:"changed_at"`
	ActionType string    `json:"action_type" db:"action_type"`
	AssetTag   string    `json:"asset_tag" db:"asset_tag"`
	FieldName  string    `json:"field_name" db:"field_name"`
	OldValue   *string   `json:"old_value" db:"old_value"`
	NewValue   *string   `json:"new_value" db:"new_value"`
	ChangedBy  string    `json:"changed_by" db:"changed_by"`
	Notes      *string   `json:"notes" db:"notes"`
}
