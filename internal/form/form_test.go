package form

import (
	"testing"

	"github.com/northgard/sigil/internal/color"
	"github.com/northgard/sigil/internal/models"
)

func baseSnapshot() Snapshot {
	return Snapshot{
		Fields: map[string]string{
			FieldTitle:       "Spring sale",
			FieldDestination: "product",
		},
		Product: models.ProductRef{ID: "p1", VariantID: "v1", Handle: "mug"},
		FgColor: color.DefaultForeground,
		BgColor: color.DefaultBackground,
	}
}

func TestCleanAfterLoad(t *testing.T) {
	tr := NewTracker(baseSnapshot())
	if tr.Dirty() {
		t.Fatal("fresh tracker should not be dirty")
	}
	// Idempotent read.
	if tr.Dirty() {
		t.Fatal("second Dirty call changed the answer")
	}
}

func TestFieldEditMakesDirty(t *testing.T) {
	tr := NewTracker(baseSnapshot())
	tr.SetField(FieldTitle, "Summer sale")
	if !tr.Dirty() {
		t.Fatal("title change should be dirty")
	}
	tr.SetField(FieldTitle, "Spring sale")
	if tr.Dirty() {
		t.Fatal("reverting to baseline value should clear dirty")
	}
}

func TestColorEditMakesDirty(t *testing.T) {
	tr := NewTracker(baseSnapshot())
	tr.SetColor(Foreground, color.HSV{H: 210, S: 0.5, V: 0.5, A: 1})
	if !tr.Dirty() {
		t.Fatal("foreground change should be dirty")
	}

	tr = NewTracker(baseSnapshot())
	tr.SetColor(Background, color.HSV{H: 10, S: 0.1, V: 0.9, A: 1})
	if !tr.Dirty() {
		t.Fatal("background change should be dirty")
	}
}

func TestProductPickMakesDirty(t *testing.T) {
	tr := NewTracker(baseSnapshot())
	tr.SetProduct(models.ProductRef{ID: "p2", VariantID: "v9", Handle: "tee"})
	if !tr.Dirty() {
		t.Fatal("product change should be dirty")
	}
}

func TestCommitClearsDirty(t *testing.T) {
	tr := NewTracker(baseSnapshot())
	tr.SetField(FieldTitle, "Renamed")
	tr.SetColor(Background, color.HSV{H: 120, S: 0.2, V: 0.8, A: 1})
	if !tr.Dirty() {
		t.Fatal("expected dirty before commit")
	}
	tr.Commit()
	if tr.Dirty() {
		t.Fatal("commit should clear dirty")
	}
	// Further edits are measured against the new baseline.
	tr.SetField(FieldTitle, "Renamed again")
	if !tr.Dirty() {
		t.Fatal("edit after commit should be dirty")
	}
}

func TestCommitSnapshotKeepsLaterEditsDirty(t *testing.T) {
	tr := NewTracker(baseSnapshot())
	tr.SetField(FieldTitle, "Renamed")
	persisted := tr.Current()

	// An edit lands after the persisted snapshot was taken.
	tr.SetField(FieldTitle, "Renamed again")

	tr.CommitSnapshot(persisted)
	if !tr.Dirty() {
		t.Fatal("edit made after the snapshot should stay dirty")
	}
	tr.SetField(FieldTitle, "Renamed")
	if tr.Dirty() {
		t.Fatal("reverting to the committed snapshot should clear dirty")
	}
}

func TestBaselineIsolatedFromWorkingState(t *testing.T) {
	snap := baseSnapshot()
	tr := NewTracker(snap)

	// Mutating the snapshot the caller passed in must not affect tracking.
	snap.Fields[FieldTitle] = "mutated"
	if tr.Dirty() {
		t.Fatal("external map mutation leaked into tracker")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	tr := NewTracker(baseSnapshot())
	cur := tr.Current()
	cur.Fields[FieldTitle] = "sneaky"
	if tr.Dirty() {
		t.Fatal("mutating Current() copy changed tracker state")
	}
}
