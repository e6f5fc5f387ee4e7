// Package runner executes a single task invocation end to end.
package runner

import (
	"context"
	"maps"

	"go.trai.ch/taskrun/internal/adapters/codec"
	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/core/ports"
	"go.trai.ch/taskrun/internal/engine/interpreter"
	"go.trai.ch/zerr"
)

// Runner encodes parameters, runs the task process and classifies its outcome.
// It holds no per-invocation state and is safe for concurrent use.
type Runner struct {
	process ports.Process
	tracer  ports.Tracer
	metrics ports.Metrics
	logger  ports.Logger
}

// New creates a new Runner with the given dependencies.
func New(
	process ports.Process,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
) *Runner {
	return &Runner{
		process: process,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute runs the task described by req and returns its classified Result.
//
// Every task that was started yields exactly one Result and a nil error.
// An error is returned only when the request is invalid, the parameters
// cannot be encoded, or the process could not be spawned (*domain.SpawnError).
func (r *Runner) Execute(ctx context.Context, req *domain.ExecutionRequest) (domain.Result, error) {
	normalized := req.WithDefaults()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	task := domain.TaskName(normalized.Executable)
	fingerprint := normalized.Fingerprint()

	ctx, span := r.tracer.Start(ctx, task)
	defer span.End()
	span.SetAttribute("taskrun.executable", normalized.Executable)
	span.SetAttribute("taskrun.fingerprint", fingerprint)
	span.SetAttribute("taskrun.input_method", string(normalized.InputMethod))

	r.logger.Debug("running task",
		"task", task,
		"fingerprint", fingerprint,
		"input_method", string(normalized.InputMethod),
		"params", normalized.Metadata.Redact(normalized.Params),
	)

	spec, err := BuildSpec(&normalized)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	outcome, err := r.process.Run(ctx, spec)
	if err != nil {
		r.metrics.ObserveSpawnFailure(task)
		span.RecordError(err)
		return nil, err
	}

	result := interpreter.Interpret(outcome)

	span.SetAttribute("taskrun.result", string(result.Kind()))
	span.SetAttribute("taskrun.exit_code", outcome.ExitCode)
	if !domain.IsOK(result) {
		span.RecordError(zerr.With(zerr.Wrap(domain.ErrTaskFailed, result.Message()), "kind", string(result.Kind())))
	}
	r.metrics.ObserveResult(task, result, outcome.Duration)

	r.logger.Debug("task finished",
		"task", task,
		"fingerprint", fingerprint,
		"result", string(result.Kind()),
		"exit_code", outcome.ExitCode,
		"duration", outcome.Duration,
	)

	return result, nil
}

// BuildSpec translates a validated request into the process adapter's input.
// Encoded parameters take precedence over static environment variables.
func BuildSpec(req *domain.ExecutionRequest) (domain.ProcessSpec, error) {
	env := maps.Clone(req.Environment)
	if env == nil {
		env = make(map[string]string)
	}

	if req.InputMethod.UsesEnv() {
		encoded, err := codec.EncodeEnv(req.Params, req.EnvPrefix)
		if err != nil {
			return domain.ProcessSpec{}, err
		}
		maps.Copy(env, encoded)
	}

	var stdin []byte
	if req.InputMethod.UsesStdin() {
		data, err := codec.EncodeStdin(req.Params)
		if err != nil {
			return domain.ProcessSpec{}, err
		}
		stdin = data
	}

	return domain.ProcessSpec{
		Argv:           req.Argv(),
		Env:            env,
		Stdin:          stdin,
		Timeout:        req.Timeout,
		MaxOutputBytes: req.MaxOutputBytes,
		WorkingDir:     req.WorkingDir,
	}, nil
}
