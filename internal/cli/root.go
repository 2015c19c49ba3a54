// Package cli provides the command-line interface for rze.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/rze-theme/rze/internal/config"
	"github.com/rze-theme/rze/internal/paths"
	"github.com/rze-theme/rze/internal/version"
)

// EnvDebug enables debug logging when set to a non-empty value.
const EnvDebug = "RZE_DEBUG"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

// env is what a command needs after the global flags are parsed.
type env struct {
	logger hclog.Logger
	cfg    *config.Config
	paths  paths.Paths
}

// NewRootCmd builds the rze command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   version.Name,
		Short: "Wallpaper-driven COSMIC theme generator",
		Long: `rze extracts a 16-colour palette from a wallpaper and installs it as a
COSMIC desktop theme, alongside terminal colour files rendered from templates.

The palette is deterministic: the same image always produces the same theme.`,
		Version:      version.Version,
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/rze/config.yaml)")

	rootCmd.AddCommand(
		newImgCmd(opts),
		newApplyCmd(opts),
		newExtractCmd(opts),
		newInitCmd(opts),
		newTemplatesCmd(opts),
		newEnvCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// newLogger returns the stderr logger for the given verbosity.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose || os.Getenv(EnvDebug) != "":
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   version.Name,
		Level:  level,
		Output: w,
	})
}

// load resolves paths, reads the config file and builds the logger.
func (o *globalOptions) load(cmd *cobra.Command) (*env, error) {
	logger := newLogger(cmd.ErrOrStderr(), o.verbose, o.quiet)

	p, err := paths.Compute()
	if err != nil {
		return nil, err
	}

	cfgPath := o.configPath
	if cfgPath == "" {
		cfgPath = p.ConfigFile()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", "path", cfgPath, "decoder", cfg.Decoder, "wallpaper", cfg.Wallpaper)

	return &env{logger: logger, cfg: cfg, paths: p}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
