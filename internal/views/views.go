// Package views manages the ordered list of named views over the code
// listing. Every structural mutation keeps the selection pointing at the
// same logical view, except when that view itself is removed.
package views

import (
	"slices"

	"github.com/northgard/sigil/internal/apperr"
	"github.com/northgard/sigil/internal/models"
)

// View is a named lens over the listing.
type View struct {
	Name string `json:"name"`
}

// categoryByName is the fixed mapping from view name to destination filter.
// Names not present here pass all codes unchanged.
var categoryByName = map[string]models.Destination{
	"Products": models.DestinationProduct,
	"Carts":    models.DestinationCart,
}

// CategoryFor returns the destination a view narrows to, or "" for all.
func CategoryFor(name string) models.Destination {
	return categoryByName[name]
}

// Registry holds the ordered views and the selected index.
// It is never empty; deleting the last view fails with apperr.ErrLastView.
type Registry struct {
	views    []View
	selected int
}

// NewRegistry creates a registry seeded with the given names.
// At least one name is required.
func NewRegistry(names ...string) *Registry {
	if len(names) == 0 {
		names = []string{"All"}
	}
	r := &Registry{}
	for _, n := range names {
		r.views = append(r.views, View{Name: n})
	}
	return r
}

// Views returns a copy of the view list.
func (r *Registry) Views() []View {
	return slices.Clone(r.views)
}

// Len returns the number of views.
func (r *Registry) Len() int { return len(r.views) }

// Selected returns the selected index, always within [0, Len).
func (r *Registry) Selected() int { return r.selected }

// SelectedView returns the currently selected view.
func (r *Registry) SelectedView() View { return r.views[r.selected] }

func (r *Registry) check(index int) error {
	if index < 0 || index >= len(r.views) {
		return apperr.IndexOutOfRange(index, len(r.views))
	}
	return nil
}

// Create appends a view with the given name. Selection is unchanged.
// Duplicate names are allowed; selection and mutations are index-based.
func (r *Registry) Create(name string) {
	r.views = append(r.views, View{Name: name})
}

// Rename replaces the name of the view at index. Selection is unchanged.
func (r *Registry) Rename(index int, name string) error {
	if err := r.check(index); err != nil {
		return err
	}
	r.views[index].Name = name
	return nil
}

// Duplicate inserts a copy named "<original> (copy)" immediately after
// index. A selection past the insertion point shifts right so it keeps
// pointing at the same logical view; selecting the original stays on the
// original, not the copy.
func (r *Registry) Duplicate(index int) error {
	if err := r.check(index); err != nil {
		return err
	}
	copyView := View{Name: r.views[index].Name + " (copy)"}
	r.views = slices.Insert(r.views, index+1, copyView)
	if r.selected > index {
		r.selected++
	}
	return nil
}

// Delete removes the view at index. The last remaining view cannot be
// deleted. If the selected view is removed, selection clamps to the
// previous entry; a selection past the removal point shifts left.
func (r *Registry) Delete(index int) error {
	if err := r.check(index); err != nil {
		return err
	}
	if len(r.views) == 1 {
		return apperr.ErrLastView
	}
	r.views = slices.Delete(r.views, index, index+1)
	switch {
	case r.selected == index:
		r.selected = max(0, index-1)
	case r.selected > index:
		r.selected--
	}
	return nil
}

// Select moves the selection to index.
func (r *Registry) Select(index int) error {
	if err := r.check(index); err != nil {
		return err
	}
	r.selected = index
	return nil
}
