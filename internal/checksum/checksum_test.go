package checksum

import (
	"testing"
	"time"

	"github.com/northgard/sigil/internal/models"
)

func TestSumCoversEditableFields(t *testing.T) {
	base := models.Code{
		Title:       "Mug code",
		Destination: models.DestinationProduct,
		Product:     models.ProductRef{ID: "p1", VariantID: "v1", Handle: "mug"},
		FgHex:       "#000000",
		BgHex:       "#ffffff",
	}
	edited := base
	edited.Title = "Mug code v2"
	if Sum(base) == Sum(edited) {
		t.Error("title change did not change checksum")
	}

	recolored := base
	recolored.BgHex = "#fefefe"
	if Sum(base) == Sum(recolored) {
		t.Error("color change did not change checksum")
	}
}

func TestSumIgnoresServerFields(t *testing.T) {
	base := models.Code{Title: "x", Destination: models.DestinationCart}
	scanned := base
	scanned.Scans = 99
	scanned.ImagePath = "abc.png"
	scanned.UpdatedAt = time.Now()
	if Sum(base) != Sum(scanned) {
		t.Error("server-maintained fields must not affect the checksum")
	}
}
