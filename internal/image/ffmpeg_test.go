package image

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rze-theme/rze/internal/colour"
)

// fakeFFmpeg writes an executable shell script standing in for ffmpeg.
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func placeholderImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(path, make([]byte, 8), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFFmpegDecoderArgs(t *testing.T) {
	d := &FFmpegDecoder{Width: 128, Height: 64}
	got := strings.Join(d.Args("/w/a b.png"), " ")
	want := "-v error -i /w/a b.png -vf scale=128:64:force_original_aspect_ratio=increase,crop=128:64,format=rgb24 -frames:v 1 -f rawvideo -pix_fmt rgb24 -"
	if got != want {
		t.Errorf("Args() = %q\nwant %q", got, want)
	}
}

func TestFFmpegDecoderDecode(t *testing.T) {
	// 2x1 image: one red pixel then one teal pixel.
	bin := fakeFFmpeg(t, `printf '\377\000\000\000\200\200'`+"\n")
	d := &FFmpegDecoder{Bin: bin, Width: 2, Height: 1}

	got, err := d.Decode(context.Background(), placeholderImage(t))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []colour.RGB{{R: 255}, {G: 128, B: 128}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Decode() = %v, want %v", got, want)
	}
}

func TestFFmpegDecoderPassesPath(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	bin := fakeFFmpeg(t, `echo "$4" > `+argsFile+"\nhead -c 3 /dev/zero\n")
	img := placeholderImage(t)

	d := &FFmpegDecoder{Bin: bin, Width: 1, Height: 1}
	if _, err := d.Decode(context.Background(), img); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != img {
		t.Errorf("ffmpeg received input %q, want %q", strings.TrimSpace(string(data)), img)
	}
}

func TestFFmpegDecoderErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		width   int
		height  int
		wantErr string
	}{
		{
			name:    "non-zero exit with stderr",
			body:    "echo 'boom' 1>&2\nexit 1\n",
			width:   1,
			height:  1,
			wantErr: "ffmpeg failed: boom",
		},
		{
			name:    "non-zero exit without stderr",
			body:    "exit 3\n",
			width:   1,
			height:  1,
			wantErr: "ffmpeg failed",
		},
		{
			name:    "short output",
			body:    "head -c 3 /dev/zero\n",
			width:   2,
			height:  2,
			wantErr: "unexpected pixel output size: got 3 expected 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &FFmpegDecoder{Bin: fakeFFmpeg(t, tt.body), Width: tt.width, Height: tt.height}
			_, err := d.Decode(context.Background(), placeholderImage(t))
			if err == nil {
				t.Fatal("Decode() expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Decode() error = %q, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestFFmpegDecoderNotFound(t *testing.T) {
	tests := []struct {
		name string
		bin  string
	}{
		{name: "absolute path", bin: filepath.Join(t.TempDir(), "no-such-ffmpeg")},
		{name: "bare name", bin: "rze-no-such-ffmpeg-binary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &FFmpegDecoder{Bin: tt.bin, Width: 1, Height: 1}
			_, err := d.Decode(context.Background(), placeholderImage(t))
			if !errors.Is(err, ErrDecoderNotFound) {
				t.Fatalf("Decode() error = %v, want ErrDecoderNotFound", err)
			}
			if !strings.Contains(err.Error(), "RZE_FFMPEG_BIN") {
				t.Errorf("Decode() error = %q, want a hint about RZE_FFMPEG_BIN", err)
			}
		})
	}
}

func TestFFmpegDecoderInvalidSize(t *testing.T) {
	d := &FFmpegDecoder{Bin: "ffmpeg", Width: 0, Height: 4}
	if _, err := d.Decode(context.Background(), "x.png"); err == nil {
		t.Error("Decode() with zero width should fail")
	}
}
