package models

// Location is one site+room combination. The (site_name, room_number)
// pair is unique and is what inventory rows reference.
type Location struct {
	ID         int    `json:"location_id" db:"location_id"`
	SiteName   string `json:"site_name" db:"site_name"`
	RoomNumber string `json:"room_number" db:"room_number"`
	RoomName   string `json:"room_name" db:"room_name"`
	RoomType   string `json:"room_type" db:"room_type"`
}
