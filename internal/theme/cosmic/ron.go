package cosmic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rze-theme/rze/internal/colour"
)

type namedColour struct {
	key string
	c   colour.RGB
}

// colours lists the palette entries in the order COSMIC writes them.
func (p *Palette) colours() []namedColour {
	out := []namedColour{
		{"bright_red", p.BrightRed},
		{"bright_green", p.BrightGreen},
		{"bright_orange", p.BrightOrange},
		{"gray_1", p.Gray1},
		{"gray_2", p.Gray2},
	}
	for i, c := range p.Neutrals {
		out = append(out, namedColour{fmt.Sprintf("neutral_%d", i), c})
	}
	return append(out,
		namedColour{"accent_blue", p.AccentBlue},
		namedColour{"accent_indigo", p.AccentIndigo},
		namedColour{"accent_purple", p.AccentPurple},
		namedColour{"accent_pink", p.AccentPink},
		namedColour{"accent_red", p.AccentRed},
		namedColour{"accent_orange", p.AccentOrange},
		namedColour{"accent_yellow", p.AccentYellow},
		namedColour{"accent_green", p.AccentGreen},
		namedColour{"accent_warm_grey", p.AccentWarmGrey},
		namedColour{"ext_warm_grey", p.ExtWarmGrey},
		namedColour{"ext_orange", p.ExtOrange},
		namedColour{"ext_yellow", p.ExtYellow},
		namedColour{"ext_blue", p.ExtBlue},
		namedColour{"ext_purple", p.ExtPurple},
		namedColour{"ext_pink", p.ExtPink},
		namedColour{"ext_indigo", p.ExtIndigo},
	)
}

func (p *Palette) writeBody(sb *strings.Builder) {
	fmt.Fprintf(sb, "    name: %q,\n", p.Name)
	for _, nc := range p.colours() {
		fmt.Fprintf(sb, "    %s: %s,\n", nc.key, rgba(nc.c, 1))
	}
}

// BuilderRON renders the palette wrapped in its variant, as stored in the
// CosmicTheme.*.Builder palette key and in theme files.
func (p *Palette) BuilderRON() string {
	var sb strings.Builder
	sb.WriteString(string(p.Variant))
	sb.WriteString("((\n")
	p.writeBody(&sb)
	sb.WriteString("))")
	return sb.String()
}

// StructRON renders the bare palette struct used by the runtime
// CosmicTheme.* palette key.
func (p *Palette) StructRON() string {
	var sb strings.Builder
	sb.WriteString("(\n")
	p.writeBody(&sb)
	sb.WriteString(")")
	return sb.String()
}

const themeFileTail = `    spacing: (
        space_none: 0,
        space_xxxs: 4,
        space_xxs: 8,
        space_xs: 12,
        space_s: 16,
        space_m: 24,
        space_l: 32,
        space_xl: 48,
        space_xxl: 64,
        space_xxxl: 128,
    ),
    corner_radii: (
        radius_0: (0.0, 0.0, 0.0, 0.0),
        radius_xs: (4.0, 4.0, 4.0, 4.0),
        radius_s: (8.0, 8.0, 8.0, 8.0),
        radius_m: (16.0, 16.0, 16.0, 16.0),
        radius_l: (32.0, 32.0, 32.0, 32.0),
        radius_xl: (160.0, 160.0, 160.0, 160.0),
    ),
    neutral_tint: None,
    bg_color: None,
    primary_container_bg: None,
    secondary_container_bg: None,
    text_tint: None,
    accent: None,
    success: None,
    warning: None,
    destructive: None,
    is_frosted: false,
    gaps: (0, 8),
    active_hint: 3,
    window_hint: None,
)
`

// ThemeFile renders a complete theme in the shape of the files under
// /usr/share/cosmic-themes. Spacing and radii use COSMIC's defaults.
func (p *Palette) ThemeFile() string {
	return "(\n    palette: " + p.BuilderRON() + ",\n" + themeFileTail
}

// SomeRGB renders an optional RGB tint as used by the builder accent key.
func SomeRGB(c colour.RGB) string {
	r, g, b := c.Normalized()
	return fmt.Sprintf("Some((\n    red: %s,\n    green: %s,\n    blue: %s,\n))",
		trimFloat(r), trimFloat(g), trimFloat(b))
}

// Component renders a widget colour ramp from a single base colour. The
// "on" colour is black or white, whichever contrasts more with base.
func Component(base colour.RGB) string {
	on := colour.White
	if colour.ContrastRatio(base, colour.Black) >= colour.ContrastRatio(base, colour.White) {
		on = colour.Black
	}
	hover := colour.LerpLinear(base, on, 0.15)
	pressed := colour.LerpLinear(base, on, 0.45)

	fields := []struct {
		key   string
		c     colour.RGB
		alpha float64
	}{
		{"base", base, 1},
		{"hover", hover, 1},
		{"pressed", pressed, 1},
		{"selected", hover, 1},
		{"selected_text", base, 1},
		{"focus", base, 1},
		{"divider", on, 1},
		{"on", on, 1},
		{"disabled", base, 1},
		{"on_disabled", colour.LerpLinear(on, base, 0.5), 1},
		{"border", base, 1},
		{"disabled_border", base, 0.5},
	}

	var sb strings.Builder
	sb.WriteString("(\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "    %s: %s,\n", f.key, rgba(f.c, f.alpha))
	}
	sb.WriteString(")")
	return sb.String()
}

func rgba(c colour.RGB, alpha float64) string {
	r, g, b := c.Normalized()
	return fmt.Sprintf("(\n        red: %s,\n        green: %s,\n        blue: %s,\n        alpha: %s,\n    )",
		trimFloat(r), trimFloat(g), trimFloat(b), trimFloat(alpha))
}

// trimFloat formats x as single precision with seven decimals, then drops
// trailing zeros and a trailing point.
func trimFloat(x float64) string {
	s := strconv.FormatFloat(float64(float32(x)), 'f', 7, 32)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}
