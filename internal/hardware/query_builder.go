package hardware

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// DefaultPageSize matches the front end's fixed page length.
const DefaultPageSize = 35

// SearchFilters carries the supported list filters. String fields are
// case-insensitive substring matches; date fields are inclusive range
// bounds. Search OR-matches one term across every substring field.
type SearchFilters struct {
	SiteName     string
	RoomNumber   string
	RoomName     string
	AssetTag     string
	AssetType    string
	Model        string
	SerialNumber string
	Notes        string
	AssignedTo   string
	Search       string

	DateAssignedFrom       *time.Time
	DateAssignedTo         *time.Time
	DateDecommissionedFrom *time.Time
	DateDecommissionedTo   *time.Time

	Page     int
	PageSize int
}

// substringColumns maps filter fields to their joined column. Location
// fields live on the locations side of the join.
var substringColumns = []struct {
	filter func(f SearchFilters) string
	column string
}{
	{func(f SearchFilters) string { return f.SiteName }, "l.site_name"},
	{func(f SearchFilters) string { return f.RoomNumber }, "l.room_number"},
	{func(f SearchFilters) string { return f.RoomName }, "l.room_name"},
	{func(f SearchFilters) string { return f.AssetTag }, "i.asset_tag"},
	{func(f SearchFilters) string { return f.AssetType }, "i.asset_type"},
	{func(f SearchFilters) string { return f.Model }, "i.model"},
	{func(f SearchFilters) string { return f.SerialNumber }, "i.serial_number"},
	{func(f SearchFilters) string { return f.Notes }, "i.notes"},
	{func(f SearchFilters) string { return f.AssignedTo }, "i.assigned_to"},
}

// buildConditions translates the filters into goqu expressions, all of
// which are ANDed together by the caller.
func buildConditions(filters SearchFilters) []exp.Expression {
	var conditions []exp.Expression

	for _, mapping := range substringColumns {
		if value := mapping.filter(filters); value != "" {
			conditions = append(conditions, goqu.I(mapping.column).ILike("%"+value+"%"))
		}
	}

	if filters.DateAssignedFrom != nil {
		conditions = append(conditions, goqu.I("i.date_assigned").Gte(*filters.DateAssignedFrom))
	}
	if filters.DateAssignedTo != nil {
		conditions = append(conditions, goqu.I("i.date_assigned").Lte(*filters.DateAssignedTo))
	}
	if filters.DateDecommissionedFrom != nil {
		conditions = append(conditions, goqu.I("i.date_decommissioned").Gte(*filters.DateDecommissionedFrom))
	}
	if filters.DateDecommissionedTo != nil {
		conditions = append(conditions, goqu.I("i.date_decommissioned").Lte(*filters.DateDecommissionedTo))
	}

	if filters.Search != "" {
		var terms []exp.Expression
		for _, mapping := range substringColumns {
			terms = append(terms, goqu.I(mapping.column).ILike("%"+filters.Search+"%"))
		}
		conditions = append(conditions, goqu.Or(terms...))
	}

	return conditions
}
