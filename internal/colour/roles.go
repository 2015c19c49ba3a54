package colour

import (
	"encoding/json"
	"fmt"
	"slices"
)

// MinForegroundContrast is the WCAG AA contrast ratio for normal text.
const MinForegroundContrast = 4.5

// Roles holds background, foreground and cursor colours derived from an
// arbitrary colour collection.
type Roles struct {
	Background RGB `json:"background"`
	Foreground RGB `json:"foreground"`
	Cursor     RGB `json:"cursor"`
}

// AssignRoles derives roles from colors.
//
// The background is the darkest colour and the foreground the lightest. When
// the lightest colour does not reach MinForegroundContrast against the
// background, the foreground becomes the colour with the highest contrast
// instead; if nothing reaches the threshold the best achievable is kept.
// An empty collection yields black on white with a white cursor.
func AssignRoles(colors []RGB) Roles {
	if len(colors) == 0 {
		return Roles{Background: Black, Foreground: White, Cursor: White}
	}

	sorted := slices.Clone(colors)
	sortByLuminance(sorted)

	bg := sorted[0]
	roles := Roles{
		Background: bg,
		Foreground: sorted[len(sorted)-1],
		Cursor:     sorted[maxContrastIndex(sorted, bg)],
	}

	if ContrastRatio(bg, roles.Foreground) < MinForegroundContrast {
		roles.Foreground = roles.Cursor
	}
	return roles
}

// MeetsContrast reports whether the foreground reaches MinForegroundContrast.
func (r Roles) MeetsContrast() bool {
	return ContrastRatio(r.Background, r.Foreground) >= MinForegroundContrast
}

// ToJSON converts the roles to indented JSON with hex values.
func (r Roles) ToJSON() ([]byte, error) {
	return json.MarshalIndent(map[string]string{
		"background": r.Background.Hex(),
		"foreground": r.Foreground.Hex(),
		"cursor":     r.Cursor.Hex(),
	}, "", "  ")
}

// String returns a human-readable representation of the roles.
func (r Roles) String() string {
	return fmt.Sprintf("background %s\nforeground %s (contrast %.2f)\ncursor     %s\n",
		r.Background.Hex(), r.Foreground.Hex(), ContrastRatio(r.Background, r.Foreground), r.Cursor.Hex())
}
