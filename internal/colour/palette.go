package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Palette is a 16-colour palette sorted by ascending relative luminance,
// with background, foreground and cursor roles derived from it.
//
// Unlike AssignRoles, the foreground is always the lightest entry and no
// minimum contrast is enforced.
type Palette struct {
	Colors     [PaletteSize]RGB
	Background RGB
	Foreground RGB
	Cursor     RGB
}

// NewPalette assembles a Palette from quantized colours.
// The input array is copied; the caller's array is not reordered.
func NewPalette(colors [PaletteSize]RGB) *Palette {
	sortByLuminance(colors[:])

	bg := colors[0]
	p := &Palette{
		Colors:     colors,
		Background: bg,
		Foreground: colors[PaletteSize-1],
	}
	p.Cursor = colors[maxContrastIndex(colors[:], bg)]
	return p
}

// maxContrastIndex returns the index of the first colour with the highest
// contrast against bg. colours must be non-empty.
func maxContrastIndex(colours []RGB, bg RGB) int {
	best := 0
	bestContrast := 0.0
	for i, c := range colours {
		if cr := ContrastRatio(bg, c); cr > bestContrast {
			best, bestContrast = i, cr
		}
	}
	return best
}

// ToHex returns the palette colours as hex strings, darkest first.
func (p *Palette) ToHex() []string {
	hex := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hex[i] = c.Hex()
	}
	return hex
}

// All returns an iterator over the palette colours in luminance order.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex       string  `json:"hex"`
	RGB       RGB     `json:"rgb"`
	Luminance float64 `json:"luminance"`
}

func newColorJSON(c RGB) ColorJSON {
	return ColorJSON{Hex: c.Hex(), RGB: c, Luminance: c.Luminance()}
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Colors     []ColorJSON `json:"colors"`
	Background ColorJSON   `json:"background"`
	Foreground ColorJSON   `json:"foreground"`
	Cursor     ColorJSON   `json:"cursor"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	out := PaletteJSON{
		Colors:     make([]ColorJSON, 0, len(p.Colors)),
		Background: newColorJSON(p.Background),
		Foreground: newColorJSON(p.Foreground),
		Cursor:     newColorJSON(p.Cursor),
	}
	for _, c := range p.Colors {
		out.Colors = append(out.Colors, newColorJSON(c))
	}
	return json.MarshalIndent(out, "", "  ")
}

// String returns a human-readable representation of the palette.
func (p *Palette) String() string {
	return p.StringWithPreview(false)
}

// StringWithPreview renders the palette, optionally with ANSI colour swatches.
func (p *Palette) StringWithPreview(showPreview bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Colors))
	for i, c := range p.Colors {
		if showPreview {
			fmt.Fprintf(&sb, "  %2d: %s  %s\n", i, FormatColourWithPreview(c, 6), c.String())
		} else {
			fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i, c.Hex(), c.String())
		}
	}
	sb.WriteString("\nRoles:\n")
	for _, r := range []struct {
		label string
		c     RGB
	}{
		{"background", p.Background},
		{"foreground", p.Foreground},
		{"cursor", p.Cursor},
	} {
		if showPreview {
			fmt.Fprintf(&sb, "  %s\n", FormatColourWithLabel(r.c, r.label, 6))
		} else {
			fmt.Fprintf(&sb, "  %-12s %s\n", r.label, r.c.Hex())
		}
	}
	return sb.String()
}
