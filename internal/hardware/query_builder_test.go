package hardware

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
)

func renderConditions(t *testing.T, filters SearchFilters) string {
	t.Helper()

	query := goqu.From("inventory")
	for _, condition := range buildConditions(filters) {
		query = query.Where(condition)
	}
	sql, _, err := query.ToSQL()
	assert.NoError(t, err)
	return sql
}

func TestBuildConditionsEmpty(t *testing.T) {
	assert.Empty(t, buildConditions(SearchFilters{}))
}

func TestBuildConditionsSubstringFilters(t *testing.T) {
	tests := []struct {
		name     string
		filters  SearchFilters
		expected string
	}{
		{"site name", SearchFilters{SiteName: "Main"}, `"l"."site_name" ILIKE '%Main%'`},
		{"room number", SearchFilters{RoomNumber: "101"}, `"l"."room_number" ILIKE '%101%'`},
		{"asset tag", SearchFilters{AssetTag: "IT-00"}, `"i"."asset_tag" ILIKE '%IT-00%'`},
		{"model", SearchFilters{Model: "latitude"}, `"i"."model" ILIKE '%latitude%'`},
		{"assigned to", SearchFilters{AssignedTo: "smith"}, `"i"."assigned_to" ILIKE '%smith%'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conditions := buildConditions(tt.filters)
			assert.Len(t, conditions, 1)
			assert.Contains(t, renderConditions(t, tt.filters), tt.expected)
		})
	}
}

func TestBuildConditionsCombinedAreANDed(t *testing.T) {
	sql := renderConditions(t, SearchFilters{SiteName: "Main", AssetType: "Laptop"})

	assert.Contains(t, sql, `"l"."site_name" ILIKE '%Main%'`)
	assert.Contains(t, sql, `"i"."asset_type" ILIKE '%Laptop%'`)
	assert.Contains(t, sql, " AND ")
}

func TestBuildConditionsDateRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	conditions := buildConditions(SearchFilters{
		DateAssignedFrom: &from,
		DateAssignedTo:   &to,
	})
	assert.Len(t, conditions, 2)

	sql := renderConditions(t, SearchFilters{DateAssignedFrom: &from, DateAssignedTo: &to})
	assert.Contains(t, sql, `"i"."date_assigned" >=`)
	assert.Contains(t, sql, `"i"."date_assigned" <=`)
}

// A free-text search term fans out across every substring column as a
// single OR group, ANDed with any field filters.
func TestBuildConditionsSearch(t *testing.T) {
	conditions := buildConditions(SearchFilters{Search: "dock"})
	assert.Len(t, conditions, 1)

	sql := renderConditions(t, SearchFilters{Search: "dock"})
	for _, column := range []string{
		`"l"."site_name"`, `"l"."room_number"`, `"l"."room_name"`,
		`"i"."asset_tag"`, `"i"."asset_type"`, `"i"."model"`,
		`"i"."serial_number"`, `"i"."notes"`, `"i"."assigned_to"`,
	} {
		assert.Contains(t, sql, column+` ILIKE '%dock%'`)
	}
	assert.Contains(t, sql, " OR ")
}

func TestBuildConditionsSearchWithFieldFilter(t *testing.T) {
	conditions := buildConditions(SearchFilters{Search: "dock", AssetType: "Laptop"})
	assert.Len(t, conditions, 2)
}
