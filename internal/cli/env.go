package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rze-theme/rze/internal/paths"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print shell exports for rze directories",
		Long: `Print export lines for the rze cache, config, state and output paths.

  eval "$(rze env)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := paths.Compute()
			if err != nil {
				return err
			}
			return writeEnv(cmd.OutOrStdout(), p)
		},
	}
}

func writeEnv(w io.Writer, p paths.Paths) error {
	vars := []struct {
		name, value string
	}{
		{"RZE_CACHE", p.CacheRoot},
		{"RZE_CONFIG", p.ConfigRoot},
		{"RZE_STATE", p.StateFile},
		{"RZE_OUT", p.OutRoot},
	}
	for _, v := range vars {
		if _, err := fmt.Fprintf(w, "export %s=%s\n", v.name, shellQuote(v.value)); err != nil {
			return err
		}
	}
	return nil
}

// shellQuote double-quotes s when it contains whitespace or a double quote.
// Plain paths are returned unchanged.
func shellQuote(s string) string {
	if !strings.ContainsAny(s, "\" \t\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
