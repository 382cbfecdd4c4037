package screen

import (
	"context"
	"errors"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/northgard/sigil/internal/apperr"
	"github.com/northgard/sigil/internal/color"
	"github.com/northgard/sigil/internal/form"
	"github.com/northgard/sigil/internal/models"
	"github.com/northgard/sigil/internal/store"
)

// Editor holds the detail form's working state for one code at a time.
// Save and Delete are mutually exclusive with each other and with
// themselves: while one write is in flight, competing writes fail with
// apperr.ErrSaveInFlight. A store failure preserves the working state so
// the user can retry without re-entering data.
type Editor struct {
	mu       sync.Mutex
	st       store.Store
	tracker  *form.Tracker
	id       string
	inflight bool
}

// NewEditor creates an editor backed by st, loaded with a blank form.
func NewEditor(st store.Store) *Editor {
	e := &Editor{st: st}
	e.Load(models.Code{})
	return e
}

// snapshotOf captures the editable fields of a code, converting the
// persisted hex colors into HSV tuples with per-surface defaults.
func snapshotOf(c models.Code) form.Snapshot {
	return form.Snapshot{
		Fields: map[string]string{
			form.FieldTitle:       c.Title,
			form.FieldDestination: string(c.Destination),
		},
		Product: c.Product,
		FgColor: color.ToHSV(c.FgHex, color.DefaultForeground),
		BgColor: color.ToHSV(c.BgHex, color.DefaultBackground),
	}
}

// Load replaces the editor state with a baseline captured from c.
// A zero-value code loads a blank creation form.
func (e *Editor) Load(c models.Code) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.id = c.ID
	e.tracker = form.NewTracker(snapshotOf(c))
}

// ID returns the id of the loaded code, empty for a not-yet-created one.
func (e *Editor) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// SetField updates one scalar field of the working state.
func (e *Editor) SetField(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.SetField(key, value)
}

// SetColor updates one color surface of the working state.
func (e *Editor) SetColor(which form.Surface, hsv color.HSV) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.SetColor(which, hsv)
}

// PickProduct applies the product picker's result. A nil product means
// the user cancelled: no state changes. Otherwise all product-related
// fields are overwritten atomically.
func (e *Editor) PickProduct(p *models.ProductRef) {
	if p == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.SetProduct(*p)
}

// Dirty reports whether the working state differs from the baseline.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Dirty()
}

// Snapshot returns a copy of the working state.
func (e *Editor) Snapshot() form.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Current()
}

// assemble builds the code payload from a snapshot of the working state,
// converting the live color tuples back to the persisted hex encoding.
func (e *Editor) assemble(snap form.Snapshot) models.Code {
	return models.Code{
		ID:          e.id,
		Title:       snap.Fields[form.FieldTitle],
		Destination: models.Destination(snap.Fields[form.FieldDestination]),
		Product:     snap.Product,
		FgHex:       color.ToHex(snap.FgColor),
		BgHex:       color.ToHex(snap.BgColor),
	}
}

// ValidateCode checks the submission rules: title, destination, and a
// picked product are required. Failures come back as validation.Errors,
// a per-field map the form can surface directly.
func ValidateCode(c models.Code) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Destination,
			validation.Required,
			validation.In(models.DestinationProduct, models.DestinationCart)),
		validation.Field(&c.Product, validation.By(func(v any) error {
			if p, ok := v.(models.ProductRef); !ok || p.Empty() {
				return errors.New("a product must be selected")
			}
			return nil
		})),
	)
}

// beginWrite marks a write in flight, failing if one already is. It
// returns the payload together with the snapshot it was assembled from,
// so a successful save commits exactly what was persisted.
func (e *Editor) beginWrite() (models.Code, form.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inflight {
		return models.Code{}, form.Snapshot{}, apperr.ErrSaveInFlight
	}
	e.inflight = true
	snap := e.tracker.Current()
	return e.assemble(snap), snap, nil
}

func (e *Editor) endWrite() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inflight = false
}

// Save validates the working state and persists it: create when no id is
// loaded yet, update otherwise. On success the persisted snapshot becomes
// the baseline and the assigned id is retained; a field edit landing
// while the store call is in flight stays dirty.
func (e *Editor) Save(ctx context.Context) (*models.Code, error) {
	payload, snap, err := e.beginWrite()
	if err != nil {
		return nil, err
	}
	defer e.endWrite()

	// Validation is local and synchronous, before any store call.
	if err := ValidateCode(payload); err != nil {
		return nil, err
	}

	var saved *models.Code
	if payload.ID == "" {
		saved, err = e.st.Create(ctx, payload)
	} else {
		saved, err = e.st.Update(ctx, payload)
	}
	if err != nil {
		// Working state untouched; the caller may retry.
		return nil, apperr.Store("save", err)
	}

	e.mu.Lock()
	e.id = saved.ID
	e.tracker.CommitSnapshot(snap)
	e.mu.Unlock()
	return saved, nil
}

// Delete removes the loaded code from the store and resets the editor to
// a blank form.
func (e *Editor) Delete(ctx context.Context) error {
	e.mu.Lock()
	if e.inflight {
		e.mu.Unlock()
		return apperr.ErrSaveInFlight
	}
	if e.id == "" {
		e.mu.Unlock()
		return apperr.ErrNotFound
	}
	id := e.id
	e.inflight = true
	e.mu.Unlock()

	err := e.st.Delete(ctx, id)

	e.mu.Lock()
	e.inflight = false
	if err == nil {
		e.id = ""
		e.tracker = form.NewTracker(snapshotOf(models.Code{}))
	}
	e.mu.Unlock()

	if err != nil {
		return apperr.Store("delete", err)
	}
	return nil
}
