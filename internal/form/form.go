// Package form tracks edits against a saved baseline and reports whether
// the working state is dirty.
package form

import (
	"maps"

	"github.com/northgard/sigil/internal/color"
	"github.com/northgard/sigil/internal/models"
)

// Field keys tracked by the editor.
const (
	FieldTitle       = "title"
	FieldDestination = "destination"
)

// Surface names an editable color slot.
type Surface string

const (
	Foreground Surface = "foreground"
	Background Surface = "background"
)

// Snapshot is a full copy of the editable state: scalar fields, the linked
// product, and the HSV tuple for each color surface.
type Snapshot struct {
	Fields  map[string]string
	Product models.ProductRef
	FgColor color.HSV
	BgColor color.HSV
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Fields = maps.Clone(s.Fields)
	return out
}

// Equal reports structural equality with other.
func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s.Fields, other.Fields) &&
		s.Product == other.Product &&
		s.FgColor == other.FgColor &&
		s.BgColor == other.BgColor
}

// Tracker holds the baseline captured at load time and the in-progress
// working state. Dirty is a pure read; Commit resets the baseline after a
// successful save.
type Tracker struct {
	baseline Snapshot
	current  Snapshot
}

// NewTracker starts tracking from the given baseline.
func NewTracker(baseline Snapshot) *Tracker {
	if baseline.Fields == nil {
		baseline.Fields = map[string]string{}
	}
	return &Tracker{
		baseline: baseline.Clone(),
		current:  baseline.Clone(),
	}
}

// SetField updates one scalar field in the working state.
func (t *Tracker) SetField(key, value string) {
	t.current.Fields[key] = value
}

// Field returns the working value for key.
func (t *Tracker) Field(key string) string {
	return t.current.Fields[key]
}

// SetProduct overwrites the linked product atomically.
func (t *Tracker) SetProduct(p models.ProductRef) {
	t.current.Product = p
}

// Product returns the working product reference.
func (t *Tracker) Product() models.ProductRef {
	return t.current.Product
}

// SetColor updates the working HSV tuple for a surface.
func (t *Tracker) SetColor(which Surface, hsv color.HSV) {
	if which == Background {
		t.current.BgColor = hsv
	} else {
		t.current.FgColor = hsv
	}
}

// Color returns the working HSV tuple for a surface.
func (t *Tracker) Color(which Surface) color.HSV {
	if which == Background {
		return t.current.BgColor
	}
	return t.current.FgColor
}

// Dirty reports whether any tracked field or color differs from the
// baseline. It has no side effects; repeated calls return the same result.
func (t *Tracker) Dirty() bool {
	return !t.current.Equal(t.baseline)
}

// Commit makes the working state the new baseline, clearing dirty.
// Call after a successful save.
func (t *Tracker) Commit() {
	t.baseline = t.current.Clone()
}

// CommitSnapshot makes the given snapshot the new baseline. The working
// state is untouched, so edits made after the snapshot was taken stay
// dirty against it.
func (t *Tracker) CommitSnapshot(s Snapshot) {
	t.baseline = s.Clone()
}

// Current returns a copy of the working state.
func (t *Tracker) Current() Snapshot {
	return t.current.Clone()
}
