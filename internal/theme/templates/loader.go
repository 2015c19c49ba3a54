// Package templates renders palette templates into configuration snippets
// for other programs. Bundled defaults can be overridden per file by
// placing a template with the same name in the user template directory.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/rze-theme/rze/internal/fsutil"
	"github.com/rze-theme/rze/internal/security"
)

//go:embed defaults/*.tmpl
var defaults embed.FS

const (
	defaultsDir = "defaults"
	extension   = ".tmpl"
)

// ErrTemplateExists is returned by DumpTemplate when an override is present
// and force is not set.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader loads templates, preferring user overrides to bundled defaults.
type Loader struct {
	embedFS   fs.FS
	customDir string
	logger    hclog.Logger
}

// NewLoader creates a loader reading overrides from customDir.
func NewLoader(customDir string, logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	sub, err := fs.Sub(defaults, defaultsDir)
	if err != nil {
		panic(fmt.Sprintf("templates: embedded defaults missing: %v", err))
	}
	return &Loader{embedFS: sub, customDir: customDir, logger: logger}
}

// Load reads a template, checking for a custom override first.
// It reports whether the content came from the override.
func (l *Loader) Load(name string) (content []byte, fromCustom bool, err error) {
	if err := security.ValidateRelativePath(name, l.customDir); err != nil {
		return nil, false, err
	}

	customPath := l.CustomPath(name)
	if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 - validated to stay inside the template directory
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	content, err = fs.ReadFile(l.embedFS, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", name, err)
	}
	l.logger.Debug("using embedded template", "name", name)
	return content, false, nil
}

// CustomDir returns the user template directory.
func (l *Loader) CustomDir() string {
	return l.customDir
}

// CustomPath returns where an override for name would live.
func (l *Loader) CustomPath(name string) string {
	return filepath.Join(l.customDir, filepath.FromSlash(name))
}

// HasCustomTemplate reports whether an override exists for name.
func (l *Loader) HasCustomTemplate(name string) bool {
	_, err := os.Stat(l.CustomPath(name))
	return err == nil
}

// Embedded lists the bundled template names.
func (l *Loader) Embedded() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.embedFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == extension {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return names, nil
}

// Names lists every template to render: bundled defaults plus any extra
// templates the user added, sorted.
func (l *Loader) Names() ([]string, error) {
	names, err := l.Embedded()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(l.customDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == l.customDir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(p) != extension {
			return nil
		}
		rel, err := filepath.Rel(l.customDir, p)
		if err != nil {
			return err
		}
		if name := filepath.ToSlash(rel); !slices.Contains(names, name) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list custom templates: %w", err)
	}

	slices.Sort(names)
	return names, nil
}

// DumpTemplate writes a bundled template to the user directory. Without
// force an existing override is left alone and ErrTemplateExists returned.
func (l *Loader) DumpTemplate(name string, force bool) error {
	content, err := fs.ReadFile(l.embedFS, name)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %q: %w", name, err)
	}

	outputPath := l.CustomPath(name)
	if !force && l.HasCustomTemplate(name) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, outputPath)
	}

	if err := fsutil.AtomicWrite(outputPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}
	return nil
}

// Dump writes every bundled template to the user directory and returns the
// paths written. Existing overrides are skipped unless force is set; the
// skipped files are reported together in the returned error.
func (l *Loader) Dump(force bool) ([]string, error) {
	names, err := l.Embedded()
	if err != nil {
		return nil, err
	}

	var dumped, skipped []string
	for _, name := range names {
		if err := l.DumpTemplate(name, force); err != nil {
			if errors.Is(err, ErrTemplateExists) {
				skipped = append(skipped, err.Error())
				continue
			}
			return dumped, err
		}
		dumped = append(dumped, l.CustomPath(name))
	}

	if len(skipped) > 0 {
		return dumped, fmt.Errorf("%s", strings.Join(skipped, "; "))
	}
	return dumped, nil
}
