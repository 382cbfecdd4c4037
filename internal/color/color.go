// Package color converts between the persisted hex encoding and the
// editable hue/saturation/value model used by the code editor.
package color

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is an editable color: hue in [0, 360), saturation and value in [0, 1].
// Alpha is fixed at 1; translucent colors are not supported and ToHex never
// emits an alpha channel.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
	A float64 `json:"a"`
}

// Per-surface defaults used when a stored hex value is absent or invalid.
// The foreground defaults to black, the background to white.
var (
	DefaultForeground = HSV{H: 0, S: 0, V: 0, A: 1}
	DefaultBackground = HSV{H: 0, S: 0, V: 1, A: 1}
)

// ToHSV parses a hex color ("#rrggbb", "rrggbb", or "#rgb") into HSV.
// An empty or unparsable input yields def rather than an error: the editor
// must come up with a usable tuple for a code that has no stored color yet.
func ToHSV(hex string, def HSV) HSV {
	if hex == "" {
		return def
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return def
	}
	h, s, v := c.Hsv()
	return HSV{H: h, S: s, V: v, A: 1}
}

// ToHex renders hsv as a lowercase 6-digit hex string. Alpha is ignored.
// For any string this function produces, ToHSV followed by ToHex yields the
// same string back (round-trip stability).
func ToHex(hsv HSV) string {
	return colorful.Hsv(hsv.H, hsv.S, hsv.V).Clamped().Hex()
}
