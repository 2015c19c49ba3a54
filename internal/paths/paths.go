// Package paths resolves the XDG directories rze reads from and writes to.
package paths

import (
	"errors"
	"os"
	"path/filepath"
)

// AppName is the directory name used under each XDG base directory.
const AppName = "rze"

// ErrNoHome is returned when HOME is unset and an XDG base directory
// needs it as a fallback.
var ErrNoHome = errors.New("HOME is not set")

// Paths holds every location rze uses.
type Paths struct {
	// CacheRoot is <cache>/rze.
	CacheRoot string
	// ConfigRoot is <config>/rze; it holds config.yaml and user templates.
	ConfigRoot string
	// OutRoot is <cache>/rze/out; rendered templates land here.
	OutRoot string
	// StateFile is <cache>/rze/state.json.
	StateFile string
	// ImageCache is <cache>/rze/images; downloaded wallpapers are kept here.
	ImageCache string
	// ConfigHome is the XDG config base, used for other programs' settings.
	ConfigHome string
	// DataHome is the XDG data base, used for shared theme files.
	DataHome string
}

// Compute resolves Paths from the current environment.
func Compute() (Paths, error) {
	return ComputeFrom(os.Getenv)
}

// ComputeFrom resolves Paths using getenv for lookups.
func ComputeFrom(getenv func(string) string) (Paths, error) {
	home := getenv("HOME")

	base := func(env, fallback string) (string, error) {
		if v := getenv(env); v != "" {
			return v, nil
		}
		if home == "" {
			return "", ErrNoHome
		}
		return filepath.Join(home, fallback), nil
	}

	cacheHome, err := base("XDG_CACHE_HOME", ".cache")
	if err != nil {
		return Paths{}, err
	}
	configHome, err := base("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return Paths{}, err
	}
	dataHome, err := base("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return Paths{}, err
	}

	cacheRoot := filepath.Join(cacheHome, AppName)
	return Paths{
		CacheRoot:  cacheRoot,
		ConfigRoot: filepath.Join(configHome, AppName),
		OutRoot:    filepath.Join(cacheRoot, "out"),
		StateFile:  filepath.Join(cacheRoot, "state.json"),
		ImageCache: filepath.Join(cacheRoot, "images"),
		ConfigHome: configHome,
		DataHome:   dataHome,
	}, nil
}

// ConfigFile returns the default location of config.yaml.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigRoot, "config.yaml")
}

// TemplateDir returns the directory holding user template overrides.
func (p Paths) TemplateDir() string {
	return filepath.Join(p.ConfigRoot, "templates")
}
