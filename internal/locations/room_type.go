package locations

import "strings"

// Room-type categories assigned during location backfill.
const (
	RoomTypeWorkspace        = "Workspace"
	RoomTypeMeetingSpace     = "Meeting Space"
	RoomTypeStorage          = "Storage"
	RoomTypeITInfrastructure = "IT Infrastructure"
	RoomTypeFacilities       = "Facilities"
	RoomTypeCommonArea       = "Common Area"
	RoomTypeCirculation      = "Circulation"
	RoomTypeOther            = "Other"
)

type roomTypeRule struct {
	keywords []string
	roomType string
}

// roomTypeRules is evaluated in order; the first keyword hit wins.
var roomTypeRules = []roomTypeRule{
	{[]string{"cubicle", "office"}, RoomTypeWorkspace},
	{[]string{"conference"}, RoomTypeMeetingSpace},
	{[]string{"storage"}, RoomTypeStorage},
	{[]string{"server", "it"}, RoomTypeITInfrastructure},
	{[]string{"restroom", "toilet"}, RoomTypeFacilities},
	{[]string{"kitchen", "break"}, RoomTypeCommonArea},
	{[]string{"corridor", "hallway"}, RoomTypeCirculation},
}

// CategorizeRoom classifies a room by substring match on its name.
func CategorizeRoom(roomName string) string {
	normalized := strings.ToLower(roomName)
	for _, rule := range roomTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return rule.roomType
			}
		}
	}
	return RoomTypeOther
}
