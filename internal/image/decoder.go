package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/rze-theme/rze/internal/colour"
	"github.com/rze-theme/rze/internal/config"
)

// ErrDecoderNotFound is returned when the external decoder binary is missing.
var ErrDecoderNotFound = errors.New("ffmpeg not found")

// Decoder turns an image file into a flat list of pixels, scaled to cover
// a fixed sample size and centre-cropped.
type Decoder interface {
	Decode(ctx context.Context, path string) ([]colour.RGB, error)
}

// NewDecoder builds the decoder named in cfg.
func NewDecoder(cfg *config.Config, logger hclog.Logger) (Decoder, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	switch cfg.Decoder {
	case config.DecoderFFmpeg:
		return &FFmpegDecoder{
			Bin:    cfg.FFmpegBin,
			Width:  cfg.SampleSize,
			Height: cfg.SampleSize,
			Logger: logger.Named("ffmpeg"),
		}, nil
	case config.DecoderNative:
		return &NativeDecoder{
			Width:  cfg.SampleSize,
			Height: cfg.SampleSize,
		}, nil
	default:
		return nil, fmt.Errorf("unknown decoder %q", cfg.Decoder)
	}
}

// pixelsFromRGB24 splits packed rgb24 bytes into pixels.
func pixelsFromRGB24(data []byte) []colour.RGB {
	px := make([]colour.RGB, 0, len(data)/3)
	for i := 0; i+2 < len(data); i += 3 {
		px = append(px, colour.RGB{R: data[i], G: data[i+1], B: data[i+2]})
	}
	return px
}
