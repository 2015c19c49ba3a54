// rze themes the COSMIC desktop from a wallpaper.
//
// It extracts a deterministic 16-colour palette from an image and installs
// it as a COSMIC theme, rendering terminal colour files alongside.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rze-theme/rze/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
