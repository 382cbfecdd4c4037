// Package screen owns the management screen's state: the board (views,
// filters, search, sort) and the editor (working copy with dirty tracking).
// Every operation is synchronous; the mutexes exist because the HTTP layer
// is concurrent, not because any operation suspends.
package screen

import (
	"sync"

	"github.com/northgard/sigil/internal/filters"
	"github.com/northgard/sigil/internal/listing"
	"github.com/northgard/sigil/internal/models"
	"github.com/northgard/sigil/internal/views"
)

// Filter criterion keys registered on a board.
const (
	FilterScans  = "scans"
	FilterHandle = "handle"
)

// Board holds the listing state: the view registry, the filter set, the
// free-text query, and the sort spec.
type Board struct {
	mu      sync.Mutex
	views   *views.Registry
	filters *filters.Set
	query   string
	sort    listing.SortSpec
}

// NewBoard creates a board with the default views and the fixed filter
// criteria: a numeric range over the scan counter and a substring match
// over the linked product handle.
func NewBoard() *Board {
	return &Board{
		views: views.NewRegistry("All", "Products", "Carts"),
		filters: filters.NewSet(
			filters.NewRangeCriterion(FilterScans, "Scans", func(c models.Code) int64 { return c.Scans }),
			filters.NewTextCriterion(FilterHandle, "Product handle", func(c models.Code) string { return c.Product.Handle }),
		),
		sort: listing.DefaultSort,
	}
}

// Project recomputes the derived sequence from the raw collection using the
// board's current state. The lock is held for the whole projection: the
// filter predicate reads the live criterion values, which concurrent
// SetFilter calls mutate.
func (b *Board) Project(codes []models.Code) []models.Code {
	b.mu.Lock()
	defer b.mu.Unlock()

	category := views.CategoryFor(b.views.SelectedView().Name)
	return listing.Project(codes, category, b.filters.Predicate(), b.query, b.sort)
}

// SetQuery replaces the free-text search query.
func (b *Board) SetQuery(q string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = q
}

// Query returns the current search query.
func (b *Board) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// SetSort replaces the sort spec.
func (b *Board) SetSort(s listing.SortSpec) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sort = s
}

// Sort returns the current sort spec.
func (b *Board) Sort() listing.SortSpec {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sort
}

// SetFilter assigns a value to one filter criterion.
func (b *Board) SetFilter(key string, value any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters.Set(key, value)
}

// ResetFilter restores one criterion to its default.
func (b *Board) ResetFilter(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters.Reset(key)
}

// ResetAllFilters restores every criterion to its default.
func (b *Board) ResetAllFilters() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters.ResetAll()
}

// AppliedFilters returns the applied-filters summary in registration order.
func (b *Board) AppliedFilters() []filters.Applied {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters.AppliedSummary()
}

// Views returns a copy of the view list.
func (b *Board) Views() []views.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.views.Views()
}

// SelectedView returns the selected view index.
func (b *Board) SelectedView() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.views.Selected()
}

// CreateView appends a view. Selection is unchanged.
func (b *Board) CreateView(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.views.Create(name)
}

// RenameView renames the view at index.
func (b *Board) RenameView(index int, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.views.Rename(index, name)
}

// DuplicateView duplicates the view at index.
func (b *Board) DuplicateView(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.views.Duplicate(index)
}

// DeleteView removes the view at index.
func (b *Board) DeleteView(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.views.Delete(index)
}

// SelectView moves the selection.
func (b *Board) SelectView(index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.views.Select(index)
}
