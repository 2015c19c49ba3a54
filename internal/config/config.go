// Package config loads rze settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Decoder names.
const (
	DecoderFFmpeg = "ffmpeg"
	DecoderNative = "native"
)

// Wallpaper backend names.
const (
	WallpaperAuto   = "auto"
	WallpaperNayu   = "nayu"
	WallpaperSwww   = "swww"
	WallpaperSwaybg = "swaybg"
	WallpaperNone   = "none"
)

// Environment variables that override file settings.
const (
	EnvFFmpegBin  = "RZE_FFMPEG_BIN"
	EnvDecoder    = "RZE_DECODER"
	EnvThemeName  = "RZE_THEME_NAME"
	EnvSampleSize = "RZE_SAMPLE_SIZE"
)

// Config holds user settings.
type Config struct {
	// ThemeName names the installed COSMIC theme.
	ThemeName string `yaml:"theme_name"`
	// Decoder selects how wallpapers become pixels: ffmpeg or native.
	Decoder string `yaml:"decoder"`
	// SampleSize is the edge length of the square the wallpaper is scaled to.
	SampleSize int `yaml:"sample_size"`
	// FFmpegBin is the ffmpeg executable name or path.
	FFmpegBin string `yaml:"ffmpeg_bin"`
	// Wallpaper selects the wallpaper backend.
	Wallpaper string `yaml:"wallpaper"`
	// Templates enables rendering of the bundled and user templates.
	Templates bool `yaml:"templates"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ThemeName:  "rze",
		Decoder:    DecoderFFmpeg,
		SampleSize: 128,
		FFmpegBin:  "ffmpeg",
		Wallpaper:  WallpaperAuto,
		Templates:  true,
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 - user config file, intended to be read
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvFFmpegBin); v != "" {
		c.FFmpegBin = v
	}
	if v := getenv(EnvDecoder); v != "" {
		c.Decoder = v
	}
	if v := getenv(EnvThemeName); v != "" {
		c.ThemeName = v
	}
	if v := getenv(EnvSampleSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSampleSize, err)
		}
		c.SampleSize = n
	}
	return nil
}

// Validate checks enum values and ranges.
func (c *Config) Validate() error {
	if c.ThemeName == "" {
		return fmt.Errorf("theme_name is required")
	}
	if !slices.Contains([]string{DecoderFFmpeg, DecoderNative}, c.Decoder) {
		return fmt.Errorf("decoder must be %q or %q, got %q", DecoderFFmpeg, DecoderNative, c.Decoder)
	}
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive, got %d", c.SampleSize)
	}
	if c.Decoder == DecoderFFmpeg && c.FFmpegBin == "" {
		return fmt.Errorf("ffmpeg_bin is required when decoder is %q", DecoderFFmpeg)
	}
	backends := []string{WallpaperAuto, WallpaperNayu, WallpaperSwww, WallpaperSwaybg, WallpaperNone}
	if !slices.Contains(backends, c.Wallpaper) {
		return fmt.Errorf("wallpaper must be one of %v, got %q", backends, c.Wallpaper)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
