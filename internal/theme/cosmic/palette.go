// Package cosmic derives COSMIC desktop themes from a wallpaper palette and
// installs them into the COSMIC config and data directories.
package cosmic

import (
	"github.com/rze-theme/rze/internal/colour"
)

// Variant selects the dark or light form of a theme.
type Variant string

const (
	Dark  Variant = "Dark"
	Light Variant = "Light"
)

// NeutralSteps is the number of entries in the neutral ramp.
const NeutralSteps = 11

// Accent thresholds.
const (
	minAccentSaturation = 0.20
	minAccentLightness  = 0.20
	maxAccentLightness  = 0.85
	minHueLightness     = 0.10
	maxHueLightness     = 0.90
)

// Target hues in degrees for the named accents.
const (
	hueRed    = 0
	hueOrange = 30
	hueYellow = 55
	hueGreen  = 120
	hueBlue   = 200
	hueIndigo = 250
	huePurple = 290
	huePink   = 330
)

// Palette is the COSMIC palette written into theme files and config keys.
type Palette struct {
	Name    string
	Variant Variant

	BrightRed    colour.RGB
	BrightGreen  colour.RGB
	BrightOrange colour.RGB
	Gray1        colour.RGB
	Gray2        colour.RGB
	Neutrals     [NeutralSteps]colour.RGB

	AccentBlue     colour.RGB
	AccentIndigo   colour.RGB
	AccentPurple   colour.RGB
	AccentPink     colour.RGB
	AccentRed      colour.RGB
	AccentOrange   colour.RGB
	AccentYellow   colour.RGB
	AccentGreen    colour.RGB
	AccentWarmGrey colour.RGB

	ExtWarmGrey colour.RGB
	ExtOrange   colour.RGB
	ExtYellow   colour.RGB
	ExtBlue     colour.RGB
	ExtPurple   colour.RGB
	ExtPink     colour.RGB
	ExtIndigo   colour.RGB
}

// Build derives the palette for variant v. Dark ramps from the palette
// background to its foreground; Light ramps the other way.
func Build(name string, v Variant, pal *colour.Palette, accent colour.RGB) *Palette {
	bg, fg := pal.Background, pal.Foreground
	gray1, gray2, warm := 2, 3, 8
	suffix := "-dark"
	if v == Light {
		bg, fg = pal.Colors[colour.PaletteSize-1], pal.Colors[0]
		gray1, gray2, warm = 8, 7, 2
		suffix = "-light"
	}

	neutrals := Neutrals(bg, fg)
	red := pickHue(pal, hueRed, accent)
	orange := pickHue(pal, hueOrange, accent)
	yellow := pickHue(pal, hueYellow, accent)
	green := pickHue(pal, hueGreen, accent)
	blue := pickHue(pal, hueBlue, accent)
	indigo := pickHue(pal, hueIndigo, accent)
	purple := pickHue(pal, huePurple, accent)
	pink := pickHue(pal, huePink, accent)

	return &Palette{
		Name:    name + suffix,
		Variant: v,

		BrightRed:    red,
		BrightGreen:  green,
		BrightOrange: orange,
		Gray1:        neutrals[gray1],
		Gray2:        neutrals[gray2],
		Neutrals:     neutrals,

		AccentBlue:     blue,
		AccentIndigo:   indigo,
		AccentPurple:   purple,
		AccentPink:     pink,
		AccentRed:      red,
		AccentOrange:   orange,
		AccentYellow:   yellow,
		AccentGreen:    green,
		AccentWarmGrey: neutrals[warm],

		// Extended accents reuse the base set.
		ExtWarmGrey: neutrals[warm],
		ExtOrange:   orange,
		ExtYellow:   yellow,
		ExtBlue:     blue,
		ExtPurple:   purple,
		ExtPink:     pink,
		ExtIndigo:   indigo,
	}
}

// Neutrals interpolates NeutralSteps colours from a to b in linear light.
func Neutrals(a, b colour.RGB) [NeutralSteps]colour.RGB {
	var out [NeutralSteps]colour.RGB
	for i := range out {
		out[i] = colour.LerpLinear(a, b, float64(i)/float64(NeutralSteps-1))
	}
	return out
}

// PickAccent returns the most saturated mid-tone in the palette, or the
// cursor colour if every entry is near-grey or too dark or light.
func PickAccent(pal *colour.Palette) colour.RGB {
	best := pal.Cursor
	bestSat := -1.0
	for _, c := range pal.Colors {
		hsl := c.HSL()
		if hsl.S < minAccentSaturation || hsl.L < minAccentLightness || hsl.L > maxAccentLightness {
			continue
		}
		if hsl.S > bestSat {
			best, bestSat = c, hsl.S
		}
	}
	return best
}

// pickHue returns the palette colour whose hue is nearest target, preferring
// higher saturation on ties. Near-greys and extreme lightness are skipped.
func pickHue(pal *colour.Palette, target float64, fallback colour.RGB) colour.RGB {
	found := false
	var best colour.RGB
	var bestDist, bestSat float64
	for _, c := range pal.Colors {
		hsl := c.HSL()
		if hsl.S < minAccentSaturation || hsl.L < minHueLightness || hsl.L > maxHueLightness {
			continue
		}
		dist := colour.HueDistance(hsl.H, target)
		if !found || dist < bestDist || (dist == bestDist && hsl.S > bestSat) {
			found, best, bestDist, bestSat = true, c, dist, hsl.S
		}
	}
	if !found {
		return fallback
	}
	return best
}
