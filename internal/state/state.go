// Package state persists the last applied palette so it can be re-applied
// without decoding the wallpaper again.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rze-theme/rze/internal/colour"
	"github.com/rze-theme/rze/internal/fsutil"
)

// ErrNoState is returned by Load when nothing has been applied yet.
var ErrNoState = errors.New("no saved state (run `rze img` first)")

// State is the last applied theme.
type State struct {
	Image     string    `json:"image"`
	ThemeName string    `json:"theme_name"`
	Palette   []string  `json:"palette"`
	AppliedAt time.Time `json:"applied_at"`
}

// New records pal as applied from image under name.
func New(image, name string, pal *colour.Palette) *State {
	return &State{
		Image:     image,
		ThemeName: name,
		Palette:   pal.ToHex(),
		AppliedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Load reads the state file at path.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path) // #nosec G304 - state file under the cache root
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the state to path atomically.
func (s *State) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := fsutil.AtomicWrite(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// Palette16 rebuilds the palette from the saved colours.
func (s *State) Palette16() (*colour.Palette, error) {
	if len(s.Palette) != colour.PaletteSize {
		return nil, fmt.Errorf("saved palette has %d colours, want %d", len(s.Palette), colour.PaletteSize)
	}
	var colors [colour.PaletteSize]colour.RGB
	for i, h := range s.Palette {
		c, err := colour.ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("saved colour %d: %w", i, err)
		}
		colors[i] = c
	}
	return colour.NewPalette(colors), nil
}
