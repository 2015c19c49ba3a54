// Package wallpaper sets the desktop wallpaper through an external tool.
package wallpaper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/rze-theme/rze/internal/config"
	"github.com/rze-theme/rze/internal/proc"
)

// Setter sets the wallpaper to an absolute image path.
type Setter interface {
	Name() string
	Set(ctx context.Context, path string) error
}

// Command runs an external program to set the wallpaper.
type Command struct {
	// Backend is the backend name used in logs and errors.
	Backend string
	// Bin is the executable to run.
	Bin string
	// Args builds the arguments for an image path.
	Args func(path string) []string
	// Detach starts the program and returns without waiting, for tools
	// that keep running to hold the wallpaper.
	Detach bool
	// Replaces names a running process to stop before Bin starts.
	Replaces string
	Logger   hclog.Logger
}

// stopProcesses is replaced in tests.
var stopProcesses = proc.Terminate

// Name returns the backend name.
func (c *Command) Name() string {
	return c.Backend
}

// Set runs the backend for path.
func (c *Command) Set(ctx context.Context, path string) error {
	logger := c.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	args := c.Args(path)
	logger.Debug("setting wallpaper", "backend", c.Backend, "bin", c.Bin, "args", args)

	if c.Replaces != "" {
		n, err := stopProcesses(c.Replaces)
		if err != nil {
			logger.Warn("could not stop previous instance", "process", c.Replaces, "error", err)
		} else if n > 0 {
			logger.Debug("stopped previous instance", "process", c.Replaces, "count", n)
		}
	}

	if c.Detach {
		// Not tied to ctx: the process must outlive this command.
		cmd := exec.Command(c.Bin, args...) // #nosec G204 - fixed backend binaries
		if err := cmd.Start(); err != nil {
			return c.wrap(err, "")
		}
		return cmd.Process.Release()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Bin, args...) // #nosec G204 - fixed backend binaries
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return c.wrap(err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (c *Command) wrap(err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s not found: %w", c.Bin, err)
	}
	if stderr != "" {
		return fmt.Errorf("%s failed: %s", c.Backend, stderr)
	}
	return fmt.Errorf("%s failed: %w", c.Backend, err)
}

// Nayu sets the wallpaper with `nayu set <path>`.
func Nayu(logger hclog.Logger) *Command {
	return &Command{
		Backend: config.WallpaperNayu,
		Bin:     "nayu",
		Args:    func(p string) []string { return []string{"set", p} },
		Logger:  logger,
	}
}

// Swww sets the wallpaper with `swww img <path>`.
func Swww(logger hclog.Logger) *Command {
	return &Command{
		Backend: config.WallpaperSwww,
		Bin:     "swww",
		Args:    func(p string) []string { return []string{"img", p} },
		Logger:  logger,
	}
}

// Swaybg starts a detached `swaybg -i <path> -m fill`.
func Swaybg(logger hclog.Logger) *Command {
	return &Command{
		Backend:  config.WallpaperSwaybg,
		Bin:      "swaybg",
		Args:     func(p string) []string { return []string{"-i", p, "-m", "fill"} },
		Detach:   true,
		Replaces: "swaybg",
		Logger:   logger,
	}
}

// Noop leaves the wallpaper alone.
type Noop struct{}

// Name returns "none".
func (Noop) Name() string { return config.WallpaperNone }

// Set does nothing.
func (Noop) Set(context.Context, string) error { return nil }

// daemons maps running processes to the backend that drives them, in
// detection order.
var daemons = []struct {
	process string
	backend string
}{
	{"swww-daemon", config.WallpaperSwww},
	{"swaybg", config.WallpaperSwaybg},
}

// Detect picks a backend from the running wallpaper daemons, falling back
// to nayu which handles the common desktops itself.
func Detect() string {
	names := make([]string, len(daemons))
	for i, d := range daemons {
		names[i] = d.process
	}
	running := proc.FirstRunning(names...)
	for _, d := range daemons {
		if d.process == running {
			return d.backend
		}
	}
	return config.WallpaperNayu
}

// New returns the Setter for a configured backend name.
func New(backend string, logger hclog.Logger) (Setter, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if backend == config.WallpaperAuto {
		backend = Detect()
		logger.Debug("detected wallpaper backend", "backend", backend)
	}

	switch backend {
	case config.WallpaperNayu:
		return Nayu(logger), nil
	case config.WallpaperSwww:
		return Swww(logger), nil
	case config.WallpaperSwaybg:
		return Swaybg(logger), nil
	case config.WallpaperNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown wallpaper backend %q", backend)
	}
}
