package cosmic

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/rze-theme/rze/internal/colour"
	"github.com/rze-theme/rze/internal/fsutil"
)

const (
	themeDirName = "cosmic-themes"
	configApp    = "cosmic"
	keyVersion   = "v1"
)

// Installer writes COSMIC theme files and config keys.
type Installer struct {
	// DataHome is the XDG data base; theme files go to <DataHome>/cosmic-themes.
	DataHome string
	// ConfigHome is the XDG config base; keys go under <ConfigHome>/cosmic.
	ConfigHome string
	Logger     hclog.Logger
}

// NewInstaller creates an Installer rooted at the given XDG bases.
func NewInstaller(dataHome, configHome string, logger hclog.Logger) *Installer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Installer{DataHome: dataHome, ConfigHome: configHome, Logger: logger}
}

// Theme holds both variants and the accent derived from one palette.
type Theme struct {
	Dark   *Palette
	Light  *Palette
	Accent colour.RGB
}

// NewTheme derives dark and light COSMIC palettes named after name.
func NewTheme(name string, pal *colour.Palette) *Theme {
	accent := PickAccent(pal)
	return &Theme{
		Dark:   Build(name, Dark, pal, accent),
		Light:  Build(name, Light, pal, accent),
		Accent: accent,
	}
}

// ThemeFilePath returns where the theme file for v is installed.
func (i *Installer) ThemeFilePath(name string, v Variant) string {
	suffix := "-dark.ron"
	if v == Light {
		suffix = "-light.ron"
	}
	return filepath.Join(i.DataHome, themeDirName, name+suffix)
}

// KeyPath returns the path of a cosmic-config key for the given component,
// for example KeyPath("com.system76.CosmicTheme.Dark.Builder", "palette").
func (i *Installer) KeyPath(component, key string) string {
	return filepath.Join(i.ConfigHome, configApp, component, keyVersion, key)
}

type write struct {
	path string
	data string
}

// plan lists every file Install writes. Name keys are returned separately
// because their failures are not fatal.
func (i *Installer) plan(name string, th *Theme) (required, optional []write) {
	accentTint := SomeRGB(th.Accent) + "\n"
	accentComponent := Component(th.Accent) + "\n"

	for _, p := range []*Palette{th.Dark, th.Light} {
		variant := string(p.Variant)
		builder := "com.system76.CosmicTheme." + variant + ".Builder"
		runtime := "com.system76.CosmicTheme." + variant

		required = append(required,
			write{i.ThemeFilePath(name, p.Variant), p.ThemeFile()},
			write{i.KeyPath(builder, "palette"), p.BuilderRON() + "\n"},
			write{i.KeyPath(runtime, "palette"), p.StructRON() + "\n"},
			write{i.KeyPath(builder, "accent"), accentTint},
			write{i.KeyPath(runtime, "accent"), accentComponent},
			write{i.KeyPath(runtime, "accent_button"), accentComponent},
		)
		optional = append(optional, write{i.KeyPath(runtime, "name"), fmt.Sprintf("%q\n", p.Name)})
	}
	return required, optional
}

// Install writes the dark and light theme files and updates the COSMIC
// builder and runtime keys so the theme applies immediately.
func (i *Installer) Install(ctx context.Context, name string, pal *colour.Palette) (*Theme, error) {
	th := NewTheme(name, pal)
	required, optional := i.plan(name, th)

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range required {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fsutil.AtomicWrite(w.path, []byte(w.data), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", w.path, err)
			}
			i.Logger.Debug("wrote cosmic file", "path", w.path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, w := range optional {
		if err := fsutil.AtomicWrite(w.path, []byte(w.data), 0o644); err != nil {
			i.Logger.Warn("could not update theme name", "path", w.path, "error", err)
		}
	}

	i.Logger.Info("installed cosmic theme", "name", name, "accent", th.Accent.Hex())
	return th, nil
}
