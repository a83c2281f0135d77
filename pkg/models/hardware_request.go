package models

import "time"

// HardwareRequest is the payload for creating one inventory row.
type HardwareRequest struct {
	AssetTag     string  `json:"asset_tag" binding:"required"`
	LocationID   *int    `json:"location_id"`
	SiteName     string  `json:"site_name"`
	AssetType    string  `json:"asset_type" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	SerialNumber string  `json:"serial_number" binding:"required"`
	Notes        *string `json:"notes"`
	AssignedTo   *string `json:"assigned_to"`
	IsLoaner     bool    `json:"is_loaner"`
}

// HardwarePatch carries partial updates; nil fields are left untouched.
type HardwarePatch struct {
	AssetTag           *string    `json:"asset_tag"`
	LocationID         *int       `json:"location_id"`
	AssetType          *string    `json:"asset_type"`
	Model              *string    `json:"model"`
	SerialNumber       *string    `json:"serial_number"`
	Notes              *string    `json:"notes"`
	AssignedTo         *string    `json:"assigned_to"`
	DateAssigned       *time.Time `json:"date_assigned"`
	DateDecommissioned *time.Time `json:"date_decommissioned"`
}

// BulkHardwareRequest is a validated stream of rows, typically produced
// by the spreadsheet import front end.
type BulkHardwareRequest struct {
	Items []HardwareRequest `json:"items" binding:"required,min=1"`
}
