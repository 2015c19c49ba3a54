package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rze-theme/rze/internal/colour"
	"github.com/rze-theme/rze/internal/image"
)

// Output formats for extract.
const (
	formatHex   = "hex"
	formatRGB   = "rgb"
	formatJSON  = "json"
	formatTable = "table"
)

type extractOptions struct {
	colours int
	format  string
	palette bool
	roles   bool
	preview bool
}

func newExtractCmd(opts *globalOptions) *cobra.Command {
	eo := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract colours from an image with the median-cut quantizer and print
them, darkest first. Nothing is written to disk.

Examples:
  # 16 colours as hex
  rze extract wallpaper.jpg

  # 8 colours with terminal swatches
  rze extract --preview --colours 8 wallpaper.png

  # The assembled palette with background, foreground and cursor
  rze extract --palette wallpaper.jpg

  # Roles with the foreground contrast guardrail, as JSON
  rze extract --roles --format json wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := eo.validate(); err != nil {
				return err
			}
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			path, err := image.ResolveImagePath(cmd.Context(), args[0], e.paths.ImageCache)
			if err != nil {
				return err
			}
			if err := image.ValidateImagePath(path); err != nil {
				return fmt.Errorf("invalid image path: %w", err)
			}

			pixels, err := decode(cmd.Context(), e, path)
			if err != nil {
				return err
			}

			if eo.preview && !colour.SupportsANSIColours(os.Stdout) {
				e.logger.Debug("stdout is not a colour terminal, previews may not render")
			}
			return eo.write(cmd.OutOrStdout(), pixels)
		},
	}

	cmd.Flags().IntVarP(&eo.colours, "colours", "c", colour.PaletteSize, "number of colours to extract (1-256)")
	cmd.Flags().StringVarP(&eo.format, "format", "f", formatHex, "output format (hex, rgb, json, table)")
	cmd.Flags().BoolVar(&eo.palette, "palette", false, "print the assembled 16-colour palette with its roles")
	cmd.Flags().BoolVar(&eo.roles, "roles", false, "print background, foreground and cursor roles")
	cmd.Flags().BoolVar(&eo.preview, "preview", false, "show colour previews in terminal")
	return cmd
}

func (o *extractOptions) validate() error {
	if o.colours < 1 || o.colours > 256 {
		return fmt.Errorf("--colours must be between 1 and 256, got %d", o.colours)
	}
	switch o.format {
	case formatHex, formatRGB, formatJSON, formatTable:
	default:
		return fmt.Errorf("unknown format %q (use hex, rgb, json or table)", o.format)
	}
	if o.palette && o.roles {
		return fmt.Errorf("--palette and --roles are mutually exclusive")
	}
	if o.palette && o.colours != colour.PaletteSize {
		return fmt.Errorf("--palette always uses %d colours", colour.PaletteSize)
	}
	return nil
}

// write quantizes pixels and prints the result selected by the options.
func (o *extractOptions) write(w io.Writer, pixels []colour.RGB) error {
	switch {
	case o.palette:
		return writePalette(w, colour.NewPalette(colour.Quantize16(pixels)), o.format, o.preview)
	case o.roles:
		return writeRoles(w, colour.AssignRoles(colour.Quantize(pixels, o.colours)), o.format)
	default:
		return writeColours(w, colour.Quantize(pixels, o.colours), o.format, o.preview)
	}
}

func writeColours(w io.Writer, colors []colour.RGB, format string, preview bool) error {
	switch format {
	case formatJSON:
		out := make([]colour.ColorJSON, len(colors))
		for i, c := range colors {
			out[i] = colour.ColorJSON{Hex: c.Hex(), RGB: c, Luminance: c.Luminance()}
		}
		return writeJSON(w, out)
	case formatTable:
		_, err := io.WriteString(w, colourTable(colors).Render())
		return err
	}

	for _, c := range colors {
		text := c.Hex()
		if format == formatRGB {
			text = c.String()
		}
		if preview {
			text = colour.ColourPreview(c, 4) + " " + text
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func writePalette(w io.Writer, pal *colour.Palette, format string, preview bool) error {
	switch format {
	case formatJSON:
		data, err := pal.ToJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatTable:
		_, err := io.WriteString(w, colourTable(pal.Colors[:]).Render())
		return err
	}
	_, err := io.WriteString(w, pal.StringWithPreview(preview))
	return err
}

func writeRoles(w io.Writer, roles colour.Roles, format string) error {
	if format == formatJSON {
		data, err := roles.ToJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := io.WriteString(w, roles.String())
	if err == nil && !roles.MeetsContrast() {
		_, err = fmt.Fprintf(w, "warning: no colour reaches %.1f:1 against the background\n", colour.MinForegroundContrast)
	}
	return err
}

// colourTable lists colours with their luminance and HSL components.
func colourTable(colors []colour.RGB) *Table {
	t := NewTable([]string{"#", "HEX", "RGB", "LUMINANCE", "HSL"})
	for i, c := range colors {
		hsl := c.HSL()
		t.AddRow([]string{
			strconv.Itoa(i),
			c.Hex(),
			c.String(),
			strconv.FormatFloat(c.Luminance(), 'f', 4, 64),
			fmt.Sprintf("%.0f° %.0f%% %.0f%%", hsl.H, hsl.S*100, hsl.L*100),
		})
	}
	return t
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
