// Command herblint lints HTML+ERB templates.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/albertocavalcante/herb/internal/cmd/herblint"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := herblint.RunWithIO(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
