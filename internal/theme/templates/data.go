package templates

import (
	"fmt"
	"time"

	"github.com/rze-theme/rze/internal/colour"
)

// Data is the value templates execute against.
type Data struct {
	// Name is the theme name.
	Name string
	// Image is the wallpaper the palette came from.
	Image string
	// Generated is when the palette was produced.
	Generated time.Time

	Colors     [colour.PaletteSize]colour.RGB
	Background colour.RGB
	Foreground colour.RGB
	Cursor     colour.RGB
	Accent     colour.RGB
}

// NewData collects template values from a palette.
func NewData(name, image string, pal *colour.Palette, accent colour.RGB) *Data {
	return &Data{
		Name:       name,
		Image:      image,
		Generated:  time.Now().UTC(),
		Colors:     pal.Colors,
		Background: pal.Background,
		Foreground: pal.Foreground,
		Cursor:     pal.Cursor,
		Accent:     accent,
	}
}

// Color returns palette entry i, darkest first.
func (d *Data) Color(i int) (colour.RGB, error) {
	if i < 0 || i >= len(d.Colors) {
		return colour.RGB{}, fmt.Errorf("color index %d out of range (palette has %d colors)", i, len(d.Colors))
	}
	return d.Colors[i], nil
}
