package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rze-theme/rze/internal/config"
	"github.com/rze-theme/rze/internal/fsutil"
	"github.com/rze-theme/rze/internal/theme/templates"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config and templates for editing",
		Long: `Write config.yaml and the bundled templates into the rze config directory
so they can be customised. Existing files are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			cfgPath := e.paths.ConfigFile()
			if _, err := os.Stat(cfgPath); force || errors.Is(err, os.ErrNotExist) {
				data, err := config.Default().Marshal()
				if err != nil {
					return err
				}
				if err := fsutil.AtomicWrite(cfgPath, data, 0o644); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Fprintln(out, cfgPath)
			} else {
				e.logger.Info("config exists, skipping", "path", cfgPath)
			}

			loader := templates.NewLoader(e.paths.TemplateDir(), e.logger)
			dumped, err := loader.Dump(force)
			for _, p := range dumped {
				fmt.Fprintln(out, p)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func newTemplatesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List templates and where they render to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}

			loader := templates.NewLoader(e.paths.TemplateDir(), e.logger)
			renderer := templates.NewRenderer(loader, e.paths.OutRoot, e.logger)
			names, err := loader.Names()
			if err != nil {
				return err
			}

			t := NewTable([]string{"TEMPLATE", "SOURCE", "OUTPUT"})
			for _, name := range names {
				source := "embedded"
				if loader.HasCustomTemplate(name) {
					source = "custom"
				}
				t.AddRow([]string{name, source, renderer.OutputPath(name)})
			}
			fmt.Fprint(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
