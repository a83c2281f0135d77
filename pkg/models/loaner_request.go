package models

import "time"

type CheckoutRequest struct {
	InventoryID        int        `json:"inventory_id" binding:"required"`
	UserName           string     `json:"user_name" binding:"required"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	Notes              *string    `json:"notes"`
}

type CheckinRequest struct {
	CheckoutID int `json:"checkout_id" binding:"required"`
}

type MarkAsLoanerRequest struct {
	InventoryID int `json:"inventory_id" binding:"required"`
}
