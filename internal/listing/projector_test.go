package listing

import (
	"testing"

	"github.com/northgard/sigil/internal/filters"
	"github.com/northgard/sigil/internal/models"
)

func titles(codes []models.Code) []string {
	var out []string
	for _, c := range codes {
		out = append(out, c.Title)
	}
	return out
}

func equal(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSearchEndToEnd(t *testing.T) {
	codes := []models.Code{
		{Title: "Banner"},
		{Title: "apple"},
		{Title: "Card"},
	}
	got := Project(codes, "", nil, "an", DefaultSort)
	if !equal(titles(got), []string{"Banner", "Card"}) {
		t.Fatalf("projection = %v, want [Banner Card]", titles(got))
	}
}

func TestEmptyQueryMatchesAll(t *testing.T) {
	codes := []models.Code{{Title: "B"}, {Title: "A"}}
	got := Project(codes, "", nil, "", DefaultSort)
	if !equal(titles(got), []string{"A", "B"}) {
		t.Fatalf("projection = %v", titles(got))
	}
}

func TestCategoryNarrowing(t *testing.T) {
	codes := []models.Code{
		{Title: "P1", Destination: models.DestinationProduct},
		{Title: "C1", Destination: models.DestinationCart},
		{Title: "P2", Destination: models.DestinationProduct},
	}
	got := Project(codes, models.DestinationProduct, nil, "", DefaultSort)
	if !equal(titles(got), []string{"P1", "P2"}) {
		t.Fatalf("projection = %v, want products only", titles(got))
	}
	// Empty category passes everything.
	got = Project(codes, "", nil, "", DefaultSort)
	if len(got) != 3 {
		t.Fatalf("empty category filtered codes: %v", titles(got))
	}
}

func TestFilterPredicateApplied(t *testing.T) {
	set := filters.NewSet(
		filters.NewRangeCriterion("scans", "Scans", func(c models.Code) int64 { return c.Scans }),
	)
	_ = set.Set("scans", filters.Range{Min: 5, Max: 50})

	codes := []models.Code{
		{Title: "low", Scans: 1},
		{Title: "mid", Scans: 10},
		{Title: "high", Scans: 99},
	}
	got := Project(codes, "", set.Predicate(), "", DefaultSort)
	if !equal(titles(got), []string{"mid"}) {
		t.Fatalf("projection = %v, want [mid]", titles(got))
	}
}

func TestStableSortTies(t *testing.T) {
	// Identical titles keep their original relative order in both directions.
	codes := []models.Code{
		{ID: "1", Title: "Same"},
		{ID: "2", Title: "Same"},
		{ID: "3", Title: "Aardvark"},
		{ID: "4", Title: "Same"},
	}
	asc := Project(codes, "", nil, "", SortSpec{Field: SortByTitle, Direction: Ascending})
	if asc[0].Title != "Aardvark" {
		t.Fatalf("ascending order wrong: %v", titles(asc))
	}
	if asc[1].ID != "1" || asc[2].ID != "2" || asc[3].ID != "4" {
		t.Errorf("ascending ties reordered: %s %s %s", asc[1].ID, asc[2].ID, asc[3].ID)
	}

	desc := Project(codes, "", nil, "", SortSpec{Field: SortByTitle, Direction: Descending})
	if desc[3].Title != "Aardvark" {
		t.Fatalf("descending order wrong: %v", titles(desc))
	}
	if desc[0].ID != "1" || desc[1].ID != "2" || desc[2].ID != "4" {
		t.Errorf("descending ties reordered: %s %s %s", desc[0].ID, desc[1].ID, desc[2].ID)
	}
}

func TestDescendingReversesAscending(t *testing.T) {
	codes := []models.Code{{Title: "b"}, {Title: "c"}, {Title: "a"}}
	got := Project(codes, "", nil, "", SortSpec{Field: SortByTitle, Direction: Descending})
	if !equal(titles(got), []string{"c", "b", "a"}) {
		t.Fatalf("projection = %v", titles(got))
	}
}

func TestSourceNotMutated(t *testing.T) {
	codes := []models.Code{{Title: "z"}, {Title: "a"}}
	_ = Project(codes, "", nil, "", DefaultSort)
	if codes[0].Title != "z" || codes[1].Title != "a" {
		t.Fatal("projector mutated the source collection")
	}
}

func TestSearchIsUTF8Aware(t *testing.T) {
	codes := []models.Code{{Title: "Ünified"}, {Title: "plain"}}
	got := Project(codes, "", nil, "ünif", DefaultSort)
	if len(got) != 1 || got[0].Title != "Ünified" {
		t.Fatalf("projection = %v", titles(got))
	}
}
