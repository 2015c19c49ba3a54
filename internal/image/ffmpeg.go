package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/rze-theme/rze/internal/colour"
	"github.com/rze-theme/rze/internal/config"
)

// FFmpegDecoder decodes images by piping them through ffmpeg as raw rgb24.
// It handles any format ffmpeg understands, including AVIF and animated
// images (first frame only).
type FFmpegDecoder struct {
	Bin    string
	Width  int
	Height int
	Logger hclog.Logger
}

// Args returns the ffmpeg arguments used to decode path.
func (d *FFmpegDecoder) Args(path string) []string {
	w, h := strconv.Itoa(d.Width), strconv.Itoa(d.Height)
	vf := fmt.Sprintf("scale=%s:%s:force_original_aspect_ratio=increase,crop=%s:%s,format=rgb24", w, h, w, h)
	return []string{
		"-v", "error",
		"-i", path,
		"-vf", vf,
		"-frames:v", "1",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	}
}

// Decode runs ffmpeg and returns exactly Width*Height pixels.
func (d *FFmpegDecoder) Decode(ctx context.Context, path string) ([]colour.RGB, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, fmt.Errorf("invalid sample size %dx%d", d.Width, d.Height)
	}
	bin := d.Bin
	if bin == "" {
		bin = "ffmpeg"
	}
	logger := d.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	args := d.Args(path)
	logger.Debug("decoding image", "bin", bin, "path", path, "size", fmt.Sprintf("%dx%d", d.Width, d.Height))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...) // #nosec G204 - binary comes from user config
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w (install ffmpeg or set %s)", ErrDecoderNotFound, config.EnvFFmpegBin)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return nil, fmt.Errorf("ffmpeg failed")
			}
			return nil, fmt.Errorf("ffmpeg failed: %s", msg)
		}
		return nil, fmt.Errorf("failed to run ffmpeg: %w", err)
	}

	expected := d.Width * d.Height * 3
	if stdout.Len() != expected {
		return nil, fmt.Errorf("unexpected pixel output size: got %d expected %d", stdout.Len(), expected)
	}

	return pixelsFromRGB24(stdout.Bytes()), nil
}
