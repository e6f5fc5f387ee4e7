package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidRequest is returned when an execution request fails validation.
	ErrInvalidRequest = zerr.New("invalid execution request")

	// ErrMissingExecutable is returned when a request does not name an executable.
	ErrMissingExecutable = zerr.New("no executable specified")

	// ErrInvalidInputMethod is returned when an input method is not one of env, stdin or both.
	ErrInvalidInputMethod = zerr.New("invalid input method, expected 'env', 'stdin' or 'both'")

	// ErrInvalidParameterName is returned when a parameter name cannot be delivered as an environment variable.
	ErrInvalidParameterName = zerr.New("invalid parameter name")

	// ErrInvalidParameters is returned when a parameter document is not a JSON object.
	ErrInvalidParameters = zerr.New("parameters must be a JSON object")

	// ErrUnknownParameter is returned when a parameter is not declared in the task metadata.
	ErrUnknownParameter = zerr.New("task does not accept parameter")

	// ErrNoopUnsupported is returned when a noop run is requested for a task that does not support it.
	ErrNoopUnsupported = zerr.New("task does not support noop")

	// ErrInvalidTimeout is returned when a timeout is negative.
	ErrInvalidTimeout = zerr.New("timeout must not be negative")

	// ErrInvalidOutputLimit is returned when the output capture limit is negative.
	ErrInvalidOutputLimit = zerr.New("output limit must not be negative")

	// ErrSpawnFailed is returned when a task process could not be started.
	ErrSpawnFailed = zerr.New("failed to start task process")

	// ErrDecodeFailed is returned when task stdout is not exactly one JSON document.
	ErrDecodeFailed = zerr.New("failed to decode task output")

	// ErrEncodeFailed is returned when parameters cannot be serialized.
	ErrEncodeFailed = zerr.New("failed to encode parameters")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMetadataReadFailed is returned when a task metadata file cannot be read.
	ErrMetadataReadFailed = zerr.New("failed to read task metadata")

	// ErrMetadataParseFailed is returned when a task metadata file cannot be parsed.
	ErrMetadataParseFailed = zerr.New("failed to parse task metadata")

	// ErrTaskFailed is returned by the application when a task produced a failure result.
	ErrTaskFailed = zerr.New("task failed")

	// ErrWatchFailed is returned when the executable cannot be watched for changes.
	ErrWatchFailed = zerr.New("failed to watch task executable")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)

// SpawnError reports that a task process never started, so no outcome exists.
// It matches ErrSpawnFailed with errors.Is and unwraps to the OS error.
type SpawnError struct {
	Executable string
	Err        error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return ErrSpawnFailed.Error() + " " + e.Executable + ": " + e.Err.Error()
}

// Unwrap returns the underlying OS error.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSpawnFailed.
func (e *SpawnError) Is(target error) bool {
	return target == ErrSpawnFailed //nolint:errorlint // sentinel identity
}

// AsSpawnError extracts a *SpawnError from an error chain.
func AsSpawnError(err error) (*SpawnError, bool) {
	var spawnErr *SpawnError
	if errors.As(err, &spawnErr) {
		return spawnErr, true
	}
	return nil, false
}
