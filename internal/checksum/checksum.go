// Package checksum fingerprints a code's editable fields for optimistic
// concurrency: an update carries the checksum it was loaded with, and the
// store rejects the write if the row changed underneath it.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/northgard/sigil/internal/models"
)

// Sum returns the hex-encoded SHA-256 digest of the code's editable fields.
// Server-maintained fields (scans, image path, timestamps) are excluded so
// a scan or a rendered image never invalidates an in-progress edit.
func Sum(c models.Code) string {
	parts := []string{
		c.Title,
		string(c.Destination),
		c.Product.ID,
		c.Product.VariantID,
		c.Product.Handle,
		c.Product.Title,
		c.Product.ImageURL,
		c.Product.ImageAlt,
		c.FgHex,
		c.BgHex,
	}
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h[:])
}
