package image

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/rze-theme/rze/internal/colour"
)

// NativeDecoder decodes JPEG, PNG, GIF and WebP in-process. It mirrors the
// ffmpeg cover-scale and centre-crop so both decoders sample the same region.
type NativeDecoder struct {
	Width  int
	Height int
}

// Decode loads path and returns exactly Width*Height pixels.
func (d *NativeDecoder) Decode(ctx context.Context, path string) ([]colour.RGB, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, fmt.Errorf("invalid sample size %dx%d", d.Width, d.Height)
	}

	file, err := os.Open(path) // #nosec G304 - user-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return d.Sample(img), nil
}

// Sample scales img to cover Width×Height, crops the centre, and returns
// the pixels row by row. Alpha is discarded.
func (d *NativeDecoder) Sample(img image.Image) []colour.RGB {
	dst := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, coverRect(img.Bounds(), d.Width, d.Height), draw.Src, nil)

	px := make([]colour.RGB, 0, d.Width*d.Height)
	for y := range d.Height {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+d.Width*4]
		for x := 0; x < len(row); x += 4 {
			px = append(px, colour.RGB{R: row[x], G: row[x+1], B: row[x+2]})
		}
	}
	return px
}

// coverRect returns the centred region of src with the target aspect ratio,
// which is what remains after scaling src to cover w×h and cropping.
func coverRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return src
	}

	cw, ch := sw, sh
	// Compare aspect ratios without floating point: sw/sh vs w/h.
	if sw*h > w*sh {
		cw = max(1, sh*w/h)
	} else {
		ch = max(1, sw*h/w)
	}

	x0 := src.Min.X + (sw-cw)/2
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}
