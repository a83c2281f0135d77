package models

import "time"

// InventoryItem is one tracked physical asset. Asset tags come from the
// source data and are expected-but-not-guaranteed unique, so the surrogate
// ID is the only stable key.
type InventoryItem struct {
	ID                 int        `json:"inventory_id" db:"inventory_id"`
	AssetTag           string     `json:"asset_tag" db:"asset_tag"`
	LocationID         *int       `json:"location_id" db:"location_id"`
	AssetType          string     `json:"asset_type" db:"asset_type"`
	Model              string     `json:"model" db:"model"`
	SerialNumber       string     `json:"serial_number" db:"serial_number"`
	Notes              *string    `json:"notes" db:"notes"`
	AssignedTo         *string    `json:"assigned_to" db:"assigned_to"`
	DateAssigned       *time.Time `json:"date_assigned" db:"date_assigned"`
	DateDecommissioned *time.Time `json:"date_decommissioned" db:"date_decommissioned"`
	IsLoaner           bool       `json:"is_loaner" db:"is_loaner"`
}

// InventoryRow is the flat list/search projection joined with the
// location directory.
type InventoryRow struct {
	ID                 int        `json:"inventory_id" db:"inventory_id"`
	SiteName           *string    `json:"site_name" db:"site_name"`
	RoomNumber         *string    `json:"room_number" db:"room_number"`
	RoomName           *string    `json:"room_name" db:"room_name"`
	AssetTag           string     `json:"asset_tag" db:"asset_tag"`
	AssetType          string     `json:"asset_type" db:"asset_type"`
	Model              string     `json:"model" db:"model"`
	SerialNumber       string     `json:"serial_number" db:"serial_number"`
	Notes              *string    `json:"notes" db:"notes"`
	AssignedTo         *string    `json:"assigned_to" db:"assigned_to"`
	DateAssigned       *time.Time `json:"date_assigned" db:"date_assigned"`
	DateDecommissioned *time.Time `json:"date_decommissioned" db:"date_decommissioned"`
	IsLoaner           bool       `json:"is_loaner" db:"is_loaner"`
}

// PaginatedInventory is the envelope the list endpoints return.
type PaginatedInventory struct {
	Items       []InventoryRow `json:"items"`
	TotalItems  int            `json:"total_items"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
}
