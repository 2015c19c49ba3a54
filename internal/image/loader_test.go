package image

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rze-theme/rze/internal/config"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/a.png": true,
		"http://example.com/a.png":  true,
		"/home/u/a.png":             false,
		"ftp://example.com/a.png":   false,
		"":                          false,
	}
	for in, want := range tests {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt", "c.webp"} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "b.png"), filepath.Join(dir, "link.png")); err != nil {
		t.Fatal(err)
	}

	got, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	want := []string{"a.JPG", "b.png", "c.webp", "link.png"}
	if !slices.Equal(names, want) {
		t.Errorf("ScanDirectoryForImages() = %v, want %v", names, want)
	}

	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("ScanDirectoryForImages() on empty dir should fail")
	}
}

func TestSelectRandomImage(t *testing.T) {
	if _, err := SelectRandomImage(nil); err == nil {
		t.Error("SelectRandomImage(nil) should fail")
	}
	paths := []string{"a", "b", "c"}
	for range 20 {
		got, err := SelectRandomImage(paths)
		if err != nil {
			t.Fatalf("SelectRandomImage() error = %v", err)
		}
		if !slices.Contains(paths, got) {
			t.Fatalf("SelectRandomImage() = %q, not in input", got)
		}
	}
}

func TestResolveImagePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "only.png")
	touch(t, file)

	got, err := ResolveImagePath(context.Background(), file, t.TempDir())
	if err != nil || got != file {
		t.Errorf("ResolveImagePath(file) = %q, %v; want %q", got, err, file)
	}

	got, err = ResolveImagePath(context.Background(), dir, t.TempDir())
	if err != nil || got != file {
		t.Errorf("ResolveImagePath(dir) = %q, %v; want %q", got, err, file)
	}

	if _, err := ResolveImagePath(context.Background(), filepath.Join(dir, "missing"), t.TempDir()); err == nil {
		t.Error("ResolveImagePath(missing) should fail")
	}

	if _, err := ResolveImagePath(context.Background(), "https://127.0.0.1/a.png", t.TempDir()); err == nil {
		t.Error("ResolveImagePath() should reject a loopback URL")
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	known := filepath.Join(dir, "wall.avif")
	touch(t, known)
	unknownGood := writePNG(t, fill(2, 2, func(int, int) color.NRGBA { return color.NRGBA{A: 255} }))
	renamed := filepath.Join(dir, "wall.img")
	if err := os.Rename(unknownGood, renamed); err != nil {
		t.Fatal(err)
	}
	unknownBad := filepath.Join(dir, "notes.txt")
	touch(t, unknownBad)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "empty", path: "", wantErr: true},
		{name: "url", path: "https://example.com/a.jpg"},
		{name: "directory", path: dir},
		{name: "known extension", path: known},
		{name: "decodable without extension", path: renamed},
		{name: "undecodable", path: unknownBad, wantErr: true},
		{name: "missing", path: filepath.Join(dir, "nope.png"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestNewDecoder(t *testing.T) {
	cfg := config.Default()
	cfg.SampleSize = 32

	d, err := NewDecoder(cfg, nil)
	if err != nil {
		t.Fatalf("NewDecoder(ffmpeg) error = %v", err)
	}
	ff, ok := d.(*FFmpegDecoder)
	if !ok || ff.Width != 32 || ff.Height != 32 || ff.Bin != "ffmpeg" {
		t.Errorf("NewDecoder(ffmpeg) = %#v", d)
	}

	cfg.Decoder = config.DecoderNative
	d, err = NewDecoder(cfg, nil)
	if err != nil {
		t.Fatalf("NewDecoder(native) error = %v", err)
	}
	if n, ok := d.(*NativeDecoder); !ok || n.Width != 32 {
		t.Errorf("NewDecoder(native) = %#v", d)
	}

	cfg.Decoder = "magick"
	if _, err := NewDecoder(cfg, nil); err == nil {
		t.Error("NewDecoder(unknown) should fail")
	}
}

func TestPixelsFromRGB24(t *testing.T) {
	got := pixelsFromRGB24([]byte{1, 2, 3, 4, 5, 6, 7})
	if len(got) != 2 || got[1].R != 4 || got[1].B != 6 {
		t.Errorf("pixelsFromRGB24() = %v", got)
	}
}
