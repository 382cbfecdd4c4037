// Package listing derives the ordered code sequence shown by the board.
// Projection is a pure recomputation: callers invoke Project whenever any
// input changes; the source collection is never mutated.
package listing

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/northgard/sigil/internal/models"
)

// SortField names the compared field.
type SortField string

// SortDirection orders the comparison.
type SortDirection string

const (
	SortByTitle SortField = "title"

	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// SortSpec pairs a field with a direction.
type SortSpec struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort is ascending by title.
var DefaultSort = SortSpec{Field: SortByTitle, Direction: Ascending}

// Project narrows the collection to the given category (empty passes all),
// applies the filter predicate (nil passes all), matches the free-text query
// case-insensitively against titles, and sorts with a locale-aware compare.
// The sort is stable: ties keep their original collection order in either
// direction.
func Project(codes []models.Code, category models.Destination, pred func(models.Code) bool, query string, sort SortSpec) []models.Code {
	out := make([]models.Code, 0, len(codes))
	q := strings.ToLower(query)
	for _, c := range codes {
		if category != "" && c.Destination != category {
			continue
		}
		if pred != nil && !pred(c) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Title), q) {
			continue
		}
		out = append(out, c)
	}

	col := collate.New(language.Und)
	slices.SortStableFunc(out, func(a, b models.Code) int {
		n := col.CompareString(a.Title, b.Title)
		if sort.Direction == Descending {
			return -n
		}
		return n
	})
	return out
}
