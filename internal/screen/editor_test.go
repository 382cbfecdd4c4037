package screen

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/northgard/sigil/internal/apperr"
	"github.com/northgard/sigil/internal/color"
	"github.com/northgard/sigil/internal/form"
	"github.com/northgard/sigil/internal/models"
	"github.com/northgard/sigil/internal/store"
	"github.com/northgard/sigil/internal/testutil"
)

func fillValidForm(e *Editor) {
	e.SetField(form.FieldTitle, "Front window")
	e.SetField(form.FieldDestination, string(models.DestinationProduct))
	e.PickProduct(&models.ProductRef{ID: "p1", VariantID: "v1", Handle: "poster", Title: "Poster"})
}

func TestSaveCreatesAndCommits(t *testing.T) {
	e := NewEditor(testutil.TestStore(t))
	fillValidForm(e)
	if !e.Dirty() {
		t.Fatal("filled form should be dirty")
	}

	saved, err := e.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Error("save did not assign an id")
	}
	if e.ID() != saved.ID {
		t.Errorf("editor id = %q, want %q", e.ID(), saved.ID)
	}
	if e.Dirty() {
		t.Error("dirty after successful save")
	}
	if saved.FgHex != "#000000" || saved.BgHex != "#ffffff" {
		t.Errorf("default colors persisted as %s/%s", saved.FgHex, saved.BgHex)
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	st := testutil.TestStore(t)
	e := NewEditor(st)
	fillValidForm(e)
	first, err := e.Save(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	e.SetField(form.FieldTitle, "Back window")
	e.SetColor(form.Background, color.HSV{H: 200, S: 0.1, V: 0.9, A: 1})
	second, err := e.Save(context.Background())
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("update created a new code: %s vs %s", second.ID, first.ID)
	}
	if second.Title != "Back window" {
		t.Errorf("title = %q", second.Title)
	}

	// The persisted hex round-trips through the editor's HSV state.
	reloaded, _ := st.Get(context.Background(), second.ID)
	e.Load(*reloaded)
	if e.Dirty() {
		t.Error("freshly loaded editor is dirty: color round trip unstable")
	}
}

func TestSaveValidation(t *testing.T) {
	e := NewEditor(testutil.TestStore(t))

	_, err := e.Save(context.Background())
	if err == nil {
		t.Fatal("empty form saved")
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("err = %T, want validation.Errors", err)
	}
	// ozzo keys field errors by json tag name.
	for _, field := range []string{"title", "destination", "product"} {
		if _, ok := fieldErrs[field]; !ok {
			t.Errorf("missing per-field error for %s in %v", field, fieldErrs)
		}
	}

	// Validation failures must not touch the store or the dirty state.
	e.SetField(form.FieldTitle, "only a title")
	if _, err := e.Save(context.Background()); err == nil {
		t.Fatal("partial form saved")
	}
	if !e.Dirty() {
		t.Error("failed save cleared dirty state")
	}
}

func TestValidateDestinationEnum(t *testing.T) {
	c := models.Code{
		Title:       "x",
		Destination: "elsewhere",
		Product:     models.ProductRef{ID: "p", VariantID: "v"},
	}
	if err := ValidateCode(c); err == nil {
		t.Fatal("unknown destination accepted")
	}
}

// failingStore wedges Save/Delete so concurrency and failure paths can be
// exercised deterministically.
type failingStore struct {
	store.Store
	block   chan struct{}
	failErr error
}

func (f *failingStore) Create(ctx context.Context, c models.Code) (*models.Code, error) {
	if f.block != nil {
		<-f.block
	}
	if f.failErr != nil {
		return nil, f.failErr
	}
	c.ID = "fake-id"
	return &c, nil
}

func (f *failingStore) Delete(ctx context.Context, id string) error {
	if f.block != nil {
		<-f.block
	}
	return f.failErr
}

func TestSavePreservesStateOnStoreError(t *testing.T) {
	fs := &failingStore{failErr: errors.New("backend down")}
	e := NewEditor(fs)
	fillValidForm(e)

	_, err := e.Save(context.Background())
	if !apperr.IsStoreError(err) {
		t.Fatalf("err = %v, want StoreError", err)
	}
	if !e.Dirty() {
		t.Error("store failure must preserve the working state for retry")
	}
	if got := e.Snapshot().Fields[form.FieldTitle]; got != "Front window" {
		t.Errorf("working title = %q after failed save", got)
	}
}

func TestOverlappingSavesExcluded(t *testing.T) {
	fs := &failingStore{block: make(chan struct{})}
	e := NewEditor(fs)
	fillValidForm(e)

	done := make(chan error, 1)
	go func() {
		_, err := e.Save(context.Background())
		done <- err
	}()

	// Wait for the first save to take the in-flight flag.
	for {
		e.mu.Lock()
		inflight := e.inflight
		e.mu.Unlock()
		if inflight {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := e.Save(context.Background()); !errors.Is(err, apperr.ErrSaveInFlight) {
		t.Errorf("overlapping save err = %v, want ErrSaveInFlight", err)
	}
	if err := e.Delete(context.Background()); !errors.Is(err, apperr.ErrSaveInFlight) {
		t.Errorf("delete during save err = %v, want ErrSaveInFlight", err)
	}

	close(fs.block)
	if err := <-done; err != nil {
		t.Fatalf("first save failed: %v", err)
	}
}

func TestEditDuringSaveStaysDirty(t *testing.T) {
	fs := &failingStore{block: make(chan struct{})}
	e := NewEditor(fs)
	fillValidForm(e)

	done := make(chan error, 1)
	go func() {
		_, err := e.Save(context.Background())
		done <- err
	}()

	// Wait for the save to take the in-flight flag, then edit a field
	// while the store call is still pending.
	for {
		e.mu.Lock()
		inflight := e.inflight
		e.mu.Unlock()
		if inflight {
			break
		}
		time.Sleep(time.Millisecond)
	}
	e.SetField(form.FieldTitle, "Side door")

	close(fs.block)
	if err := <-done; err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The save persisted "Front window"; the in-flight edit must remain
	// dirty against that baseline, not be silently marked clean.
	if !e.Dirty() {
		t.Error("edit made during the save was marked clean without being persisted")
	}
	if got := e.Snapshot().Fields[form.FieldTitle]; got != "Side door" {
		t.Errorf("working title = %q, want the in-flight edit kept", got)
	}
}

func TestDeleteResetsEditor(t *testing.T) {
	st := testutil.TestStore(t)
	e := NewEditor(st)
	fillValidForm(e)
	saved, err := e.Save(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if err := e.Delete(context.Background()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if e.ID() != "" {
		t.Error("editor still holds a deleted code id")
	}
	if _, err := st.Get(context.Background(), saved.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Error("code still present after delete")
	}
}

func TestDeleteWithoutLoadedCode(t *testing.T) {
	e := NewEditor(testutil.TestStore(t))
	if err := e.Delete(context.Background()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPickProductNilIsNoOp(t *testing.T) {
	e := NewEditor(testutil.TestStore(t))
	e.PickProduct(nil)
	if e.Dirty() {
		t.Fatal("cancelled picker changed state")
	}

	e.PickProduct(&models.ProductRef{ID: "p2", VariantID: "v2", Handle: "tee", Title: "Tee", ImageURL: "img", ImageAlt: "alt"})
	snap := e.Snapshot()
	if snap.Product.ID != "p2" || snap.Product.ImageAlt != "alt" {
		t.Errorf("product fields not overwritten atomically: %+v", snap.Product)
	}
}
