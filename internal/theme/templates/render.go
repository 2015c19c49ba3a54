package templates

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/rze-theme/rze/internal/fsutil"
)

// Renderer executes every template and writes the results to OutDir, with
// the .tmpl extension removed.
type Renderer struct {
	Loader *Loader
	OutDir string
	Logger hclog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(loader *Loader, outDir string, logger hclog.Logger) *Renderer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Renderer{Loader: loader, OutDir: outDir, Logger: logger}
}

// Execute renders a single template to bytes.
func (r *Renderer) Execute(name string, data *Data) ([]byte, error) {
	content, _, err := r.Loader.Load(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(Funcs(data)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// OutputPath returns where the rendered form of name is written.
func (r *Renderer) OutputPath(name string) string {
	return filepath.Join(r.OutDir, filepath.FromSlash(strings.TrimSuffix(name, extension)))
}

// RenderAll renders every template and returns the output paths that
// changed. Rendering stops at the first failure.
func (r *Renderer) RenderAll(data *Data) ([]string, error) {
	names, err := r.Loader.Names()
	if err != nil {
		return nil, err
	}

	var written []string
	for _, name := range names {
		out, err := r.Execute(name, data)
		if err != nil {
			return written, err
		}

		path := r.OutputPath(name)
		changed, err := fsutil.WriteIfChanged(path, out, 0o644)
		if err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		if changed {
			r.Logger.Debug("rendered template", "name", name, "path", path)
			written = append(written, path)
		}
	}
	return written, nil
}
