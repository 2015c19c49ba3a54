package templates

import (
	"github.com/hashicorp/go-hclog"

	"github.com/rze-theme/rze/internal/proc"
)

// ReloadTerminals asks running kitty instances to re-read their config so
// the rendered kitty.conf takes effect. Failures are logged, not returned.
func ReloadTerminals(logger hclog.Logger) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	n, err := proc.Reload("kitty")
	if err != nil {
		logger.Warn("could not reload kitty", "error", err)
		return
	}
	if n > 0 {
		logger.Debug("reloaded kitty", "instances", n)
	}
}
