package filters

import (
	"testing"

	"github.com/northgard/sigil/internal/models"
)

func testSet() *Set {
	return NewSet(
		NewRangeCriterion("scans", "Scans", func(c models.Code) int64 { return c.Scans }),
		NewTextCriterion("handle", "Product handle", func(c models.Code) string { return c.Product.Handle }),
	)
}

func codes() []models.Code {
	return []models.Code{
		{Title: "A", Scans: 0, Product: models.ProductRef{Handle: "coffee-mug"}},
		{Title: "B", Scans: 15, Product: models.ProductRef{Handle: "coffee-beans"}},
		{Title: "C", Scans: 120, Product: models.ProductRef{Handle: "tea-pot"}},
	}
}

func matching(s *Set, cs []models.Code) []string {
	pred := s.Predicate()
	var out []string
	for _, c := range cs {
		if pred(c) {
			out = append(out, c.Title)
		}
	}
	return out
}

func TestNoFiltersAppliedMatchesAll(t *testing.T) {
	s := testSet()
	if got := matching(s, codes()); len(got) != 3 {
		t.Fatalf("matched %v, want all", got)
	}
	if applied := s.AppliedSummary(); len(applied) != 0 {
		t.Fatalf("applied = %v, want none", applied)
	}
}

func TestRangeCriterion(t *testing.T) {
	s := testSet()
	if err := s.Set("scans", Range{Min: 10, Max: 100}); err != nil {
		t.Fatal(err)
	}
	got := matching(s, codes())
	if len(got) != 1 || got[0] != "B" {
		t.Fatalf("matched %v, want [B]", got)
	}
}

func TestTextCriterionCaseInsensitive(t *testing.T) {
	s := testSet()
	if err := s.Set("handle", "COFFEE"); err != nil {
		t.Fatal(err)
	}
	got := matching(s, codes())
	if len(got) != 2 {
		t.Fatalf("matched %v, want A and B", got)
	}
}

func TestCompositionIsAnd(t *testing.T) {
	s := testSet()
	_ = s.Set("handle", "coffee")
	before := matching(s, codes())

	// Activating a second criterion can only shrink or preserve the result.
	_ = s.Set("scans", Range{Min: 10, Max: 100})
	after := matching(s, codes())
	if len(after) > len(before) {
		t.Fatalf("AND composition grew the result: %v -> %v", before, after)
	}
	if len(after) != 1 || after[0] != "B" {
		t.Fatalf("matched %v, want [B]", after)
	}
}

func TestAppliedSummaryOrderAndRemove(t *testing.T) {
	s := testSet()
	// Apply in reverse registration order; summary must follow registration order.
	_ = s.Set("handle", "coffee")
	_ = s.Set("scans", Range{Min: 1, Max: 5})

	applied := s.AppliedSummary()
	if len(applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(applied))
	}
	if applied[0].Key != "scans" || applied[1].Key != "handle" {
		t.Fatalf("order = [%s, %s], want registration order", applied[0].Key, applied[1].Key)
	}

	applied[0].Remove()
	if got := s.AppliedSummary(); len(got) != 1 || got[0].Key != "handle" {
		t.Fatalf("after remove, applied = %v", got)
	}
}

func TestResetAndResetAll(t *testing.T) {
	s := testSet()
	_ = s.Set("handle", "tea")
	if err := s.Reset("handle"); err != nil {
		t.Fatal(err)
	}
	if len(s.AppliedSummary()) != 0 {
		t.Fatal("reset did not clear criterion")
	}

	_ = s.Set("handle", "tea")
	_ = s.Set("scans", Range{Min: 0, Max: 10})
	s.ResetAll()
	if len(s.AppliedSummary()) != 0 {
		t.Fatal("resetAll did not clear criteria")
	}
}

func TestSetWrongType(t *testing.T) {
	s := testSet()
	if err := s.Set("scans", "nope"); err == nil {
		t.Fatal("expected type error for range criterion")
	}
	if err := s.Set("handle", 42); err == nil {
		t.Fatal("expected type error for text criterion")
	}
	if err := s.Set("missing", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
