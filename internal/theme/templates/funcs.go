package templates

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/rze-theme/rze/internal/colour"
)

// Funcs returns the template functions bound to d.
func Funcs(d *Data) template.FuncMap {
	return template.FuncMap{
		// Palette access.
		"color": d.Color,

		// Format conversion.
		"hex":        hexFunc,
		"hexNoHash":  hexNoHashFunc,
		"rgb":        rgbFunc,
		"rgbDecimal": rgbDecimalFunc,

		// Colour maths.
		"lerp":      lerpFunc,
		"contrast":  colour.ContrastRatio,
		"luminance": luminanceFunc,

		// String manipulation (pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// hexFunc returns color in #rrggbb format.
func hexFunc(c colour.RGB) string {
	return c.Hex()
}

// hexNoHashFunc returns color in rrggbb format.
func hexNoHashFunc(c colour.RGB) string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// rgbFunc returns color in CSS rgb(r, g, b) format.
func rgbFunc(c colour.RGB) string {
	return c.String()
}

// rgbDecimalFunc returns color as "r,g,b".
func rgbDecimalFunc(c colour.RGB) string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// lerpFunc blends a towards b in linear light. The fraction comes first so
// it works in pipes:
//
//	{{ .Background | lerp 0.2 .Foreground }}
func lerpFunc(t float64, b, a colour.RGB) colour.RGB {
	return colour.LerpLinear(a, b, t)
}

func luminanceFunc(c colour.RGB) string {
	return fmt.Sprintf("%.4f", c.Luminance())
}

// trimPrefixFunc removes a prefix from a string (pipe-friendly argument order).
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order).
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
