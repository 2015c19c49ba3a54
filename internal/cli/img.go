package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rze-theme/rze/internal/colour"
	"github.com/rze-theme/rze/internal/image"
	"github.com/rze-theme/rze/internal/state"
	"github.com/rze-theme/rze/internal/theme/cosmic"
	"github.com/rze-theme/rze/internal/theme/templates"
	"github.com/rze-theme/rze/internal/wallpaper"
)

func newImgCmd(opts *globalOptions) *cobra.Command {
	var noReset, dryRun bool

	cmd := &cobra.Command{
		Use:   "img <path|dir|url>",
		Short: "Theme the desktop from a wallpaper",
		Long: `Set the wallpaper, extract a 16-colour palette from it and install the
palette as a COSMIC theme. Bundled and user templates are rendered into
the output directory.

A directory picks a random image inside it. An HTTPS URL is downloaded
into the image cache first.

Examples:
  rze img ~/Pictures/wall.jpg
  rze img ~/Pictures/walls/
  rze img --dry-run https://example.com/wall.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			path, err := image.ResolveImagePath(ctx, args[0], e.paths.ImageCache)
			if err != nil {
				return err
			}
			if err := image.ValidateImagePath(path); err != nil {
				return fmt.Errorf("invalid image path: %w", err)
			}
			e.logger.Debug("resolved image", "path", path)

			if !dryRun {
				setWallpaper(ctx, e, path)
			}

			pal, err := extractPalette(ctx, e, path)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), pal.StringWithPreview(colour.SupportsANSIColours(os.Stdout)))
				return nil
			}

			if err := applyTheme(ctx, e, e.cfg.ThemeName, path, pal, noReset); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noReset, "no-reset", false, "do not reload running applications")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the palette without writing anything")
	return cmd
}

func newApplyCmd(opts *globalOptions) *cobra.Command {
	var noReset bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Re-apply the last palette",
		Long: `Re-install the COSMIC theme and re-render templates from the palette saved
by the last successful "rze img", without decoding the wallpaper again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			s, err := state.Load(e.paths.StateFile)
			if err != nil {
				return err
			}
			pal, err := s.Palette16()
			if err != nil {
				return err
			}

			// Re-install under the name img used, even if the config changed since.
			name := s.ThemeName
			if name == "" {
				name = e.cfg.ThemeName
			}
			if err := applyTheme(cmd.Context(), e, name, s.Image, pal, noReset); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noReset, "no-reset", false, "do not reload running applications")
	return cmd
}

// setWallpaper runs the configured backend. Failure only warns: the theme
// is still worth installing.
func setWallpaper(ctx context.Context, e *env, path string) {
	setter, err := wallpaper.New(e.cfg.Wallpaper, e.logger.Named("wallpaper"))
	if err != nil {
		e.logger.Warn("wallpaper not set", "error", err)
		return
	}
	if err := setter.Set(ctx, path); err != nil {
		e.logger.Warn("wallpaper not set", "backend", setter.Name(), "error", err)
	}
}

// extractPalette decodes path and assembles its palette.
func extractPalette(ctx context.Context, e *env, path string) (*colour.Palette, error) {
	pixels, err := decode(ctx, e, path)
	if err != nil {
		return nil, err
	}
	pal := colour.NewPalette(colour.Quantize16(pixels))
	e.logger.Debug("extracted palette",
		"background", pal.Background.Hex(),
		"foreground", pal.Foreground.Hex(),
		"cursor", pal.Cursor.Hex())
	return pal, nil
}

func decode(ctx context.Context, e *env, path string) ([]colour.RGB, error) {
	dec, err := image.NewDecoder(e.cfg, e.logger)
	if err != nil {
		return nil, err
	}
	pixels, err := dec.Decode(ctx, path)
	if err != nil {
		if errors.Is(err, image.ErrDecoderNotFound) {
			e.logger.Info("set decoder: native in config.yaml to decode without ffmpeg")
		}
		return nil, err
	}
	e.logger.Debug("decoded image", "pixels", len(pixels))
	return pixels, nil
}

// applyTheme installs pal as the COSMIC theme, renders templates and
// records the result for "rze apply".
func applyTheme(ctx context.Context, e *env, name, imagePath string, pal *colour.Palette, noReset bool) error {
	installer := cosmic.NewInstaller(e.paths.DataHome, e.paths.ConfigHome, e.logger.Named("cosmic"))
	th, err := installer.Install(ctx, name, pal)
	if err != nil {
		return fmt.Errorf("failed to install theme: %w", err)
	}

	if e.cfg.Templates {
		loader := templates.NewLoader(e.paths.TemplateDir(), e.logger)
		renderer := templates.NewRenderer(loader, e.paths.OutRoot, e.logger.Named("templates"))
		written, err := renderer.RenderAll(templates.NewData(name, imagePath, pal, th.Accent))
		if err != nil {
			return fmt.Errorf("failed to render templates: %w", err)
		}
		e.logger.Debug("rendered templates", "changed", len(written), "dir", e.paths.OutRoot)
		if !noReset && len(written) > 0 {
			templates.ReloadTerminals(e.logger)
		}
	}

	if err := state.New(imagePath, name, pal).Save(e.paths.StateFile); err != nil {
		return err
	}
	return nil
}
