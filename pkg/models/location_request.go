package models

type LocationRequest struct {
	SiteName   string `json:"site_name" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
	RoomName   string `json:"room_name" binding:"required"`
	RoomType   string `json:"room_type" binding:"required"`
}

// LocationPatch carries partial updates; nil fields are left untouched.
type LocationPatch struct {
	SiteName   *string `json:"site_name"`
	RoomNumber *string `json:"room_number"`
	RoomName   *string `json:"room_name"`
	RoomType   *string `json:"room_type"`
}

type ValidateLocationRequest struct {
	SiteName   string `json:"site_name" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
}

type ValidateLocationResponse struct {
	Exists     bool `json:"exists"`
	LocationID *int `json:"location_id"`
}
