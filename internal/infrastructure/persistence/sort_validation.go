package persistence

import (
	"strings"
)

// SortColumns maps the order_by values a list accepts to table columns.
// Anything else sorts by the fallback column, so user input never reaches SQL.
type SortColumns struct {
	columns  map[string]string
	fallback string
}

// NewSortColumns accepts every key as the column of the same name
func NewSortColumns(fallback string, keys ...string) SortColumns {
	columns := make(map[string]string, len(keys)+1)
	columns[fallback] = fallback
	for _, k := range keys {
		columns[k] = k
	}
	return SortColumns{columns: columns, fallback: fallback}
}

// Column returns the column for orderBy, or the fallback
func (s SortColumns) Column(orderBy string) string {
	if c, ok := s.columns[strings.TrimSpace(orderBy)]; ok {
		return c
	}
	return s.fallback
}

// Clause builds the ORDER BY clause. The id tiebreak keeps pages stable
// when many rows share the sort value.
func (s SortColumns) Clause(orderBy, orderDir string) string {
	return s.Column(orderBy) + " " + sortDirection(orderDir) + ", id ASC"
}

// sortDirection defaults to DESC so the newest rows come first
func sortDirection(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

var (
	// SaleSortColumns orders sale lists
	SaleSortColumns = NewSortColumns("created_at",
		"number", "party_name", "state", "confirmed_at", "processed_at", "updated_at")

	// WorkSortColumns orders project lists
	WorkSortColumns = NewSortColumns("created_at", "name", "sequence", "updated_at")

	// ProductSortColumns orders product lists
	ProductSortColumns = NewSortColumns("code",
		"name", "type", "list_price", "cost_price", "created_at", "updated_at")
)
