// Package app implements the application layer for taskrun.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/taskrun/internal/adapters/config"
	"go.trai.ch/taskrun/internal/adapters/render"
	"go.trai.ch/taskrun/internal/adapters/watcher"
	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TaskRunner executes one task invocation.
type TaskRunner interface {
	Execute(ctx context.Context, req *domain.ExecutionRequest) (domain.Result, error)
}

// App represents the main application logic.
type App struct {
	configLoader   ports.ConfigLoader
	runner         TaskRunner
	renderers      *render.Renderers
	metrics        ports.Metrics
	watcher        ports.Watcher
	logger         ports.Logger
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner TaskRunner,
	renderers *render.Renderers,
	metrics ports.Metrics,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader:   loader,
		runner:         runner,
		renderers:      renderers,
		metrics:        metrics,
		watcher:        w,
		logger:         log,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets how long watch mode waits for file events to settle.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.debounceWindow = window
	return a
}

// RunOptions configuration for the Run method.
// Nil pointer fields leave the configured value in place.
type RunOptions struct {
	Executable  string
	Args        []string
	Params      []string
	ParamsJSON  string
	InputMethod string
	EnvPrefix   string
	Timeout     *time.Duration
	MaxOutput   *int
	Interpreter string
	Format      string
	Noop        bool
	Watch       bool
	MetricsFile string
	ConfigPath  string
	Out         io.Writer
}

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	Executable string
	Out        io.Writer
}

// ConfigureLogging switches the logger to verbose or JSON output when it supports it.
func (a *App) ConfigureLogging(verbose, jsonOutput bool) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(jsonOutput)
	}
}

// Run executes the task once, or on every change to it when opts.Watch is set.
// A task that produced a failure result is reported as domain.ErrTaskFailed
// after the result has been rendered.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	renderer, err := a.renderers.For(opts.Format)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if !opts.Watch {
		return a.runOnce(ctx, opts, renderer, out)
	}
	return a.watch(ctx, opts, renderer, out)
}

// Show prints the metadata of a task.
func (a *App) Show(_ context.Context, opts ShowOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	meta, err := a.configLoader.LoadMetadata(opts.Executable)
	if err != nil {
		return err
	}
	return render.Metadata(out, domain.TaskName(opts.Executable), meta)
}

func (a *App) runOnce(ctx context.Context, opts RunOptions, renderer ports.Renderer, out io.Writer) error {
	req, err := a.buildRequest(opts)
	if err != nil {
		return err
	}

	result, err := a.runner.Execute(ctx, req)
	if err != nil {
		a.writeMetrics(opts.MetricsFile)
		return zerr.With(err, "task", domain.TaskName(req.Executable))
	}

	if err := renderer.Render(out, domain.TaskName(req.Executable), result); err != nil {
		return err
	}
	a.writeMetrics(opts.MetricsFile)

	if !domain.IsOK(result) {
		return zerr.With(zerr.Wrap(domain.ErrTaskFailed, result.Message()), "kind", string(result.Kind()))
	}
	return nil
}

// writeMetrics exports the collected metrics. Failures are logged, not returned.
func (a *App) writeMetrics(path string) {
	if path == "" {
		return
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		a.logger.Error(err)
	}
}

// watch runs the task, then runs it again each time the executable or its
// metadata changes, until ctx is cancelled.
func (a *App) watch(ctx context.Context, opts RunOptions, renderer ports.Renderer, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths := []string{opts.Executable}
	if metaPath := config.MetadataPath(opts.Executable); metaPath != opts.Executable {
		paths = append(paths, metaPath)
	}
	if err := a.watcher.Start(ctx, paths...); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(changed []string) {
		a.logger.Debug("task files changed", "paths", strings.Join(changed, ","))
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		defer func() {
			debouncer.Stop()
			_ = a.watcher.Stop()
		}()

		for {
			if err := a.runOnce(ctx, opts, renderer, out); err != nil && ctx.Err() == nil {
				if !errors.Is(err, domain.ErrTaskFailed) {
					a.logger.Error(err)
				}
			}
			a.logger.Info("watching for changes", "task", filepath.Base(opts.Executable))

			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
			}
		}
	})

	return g.Wait()
}
