package models

import "time"

// LoanerCheckout is one checkout episode for a loaner-flagged item.
// Rows are never deleted; check-in sets CheckinDate exactly once.
type LoanerCheckout struct {
	ID                 int        `json:"checkout_id" db:"checkout_id"`
	InventoryID        int        `json:"inventory_id" db:"inventory_id"`
	UserName           string     `json:"user_name" db:"user_name"`
	CheckoutDate       time.Time  `json:"checkout_date" db:"checkout_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date" db:"expected_return_date"`
	CheckinDate        *time.Time `json:"checkin_date" db:"checkin_date"`
	Notes              *string    `json:"notes" db:"notes"`
}

// CheckedOutLoaner joins an outstanding checkout with its inventory row.
type CheckedOutLoaner struct {
	CheckoutID         int        `json:"checkout_id" db:"checkout_id"`
	InventoryID        int        `json:"inventory_id" db:"inventory_id"`
	AssetTag           string     `json:"asset_tag" db:"asset_tag"`
	AssetType          string     `json:"asset_type" db:"asset_type"`
	Model              string     `json:"model" db:"model"`
	SerialNumber       string     `json:"serial_number" db:"serial_number"`
	UserName           string     `json:"user_name" db:"user_name"`
	CheckoutDate       time.Time  `json:"checkout_date" db:"checkout_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date" db:"expected_return_date"`
	Notes              *string    `json:"notes" db:"notes"`
}
