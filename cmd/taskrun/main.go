// Package main is the entry point for the taskrun task runner.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskrun/cmd/taskrun/commands"
	"go.trai.ch/taskrun/internal/app"
	"go.trai.ch/taskrun/internal/core/domain"
	_ "go.trai.ch/taskrun/internal/wiring"
)

// Exit codes.
const (
	exitOK         = 0
	exitTaskFailed = 1
	exitError      = 2
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available when initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitError
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// The failed result has already been rendered.
		if errors.Is(err, domain.ErrTaskFailed) {
			return exitTaskFailed
		}
		components.Logger.Error(err)
		return exitError
	}
	return exitOK
}
