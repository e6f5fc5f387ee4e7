package app

import (
	"maps"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildRequest assembles the execution request for opts.
// Values are layered as configuration file, then task metadata, then flags.
func (a *App) buildRequest(opts RunOptions) (*domain.ExecutionRequest, error) {
	if strings.TrimSpace(opts.Executable) == "" {
		return nil, domain.ErrMissingExecutable
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	meta, err := a.configLoader.LoadMetadata(opts.Executable)
	if err != nil {
		return nil, err
	}

	params, err := parseParams(opts.ParamsJSON, opts.Params)
	if err != nil {
		return nil, err
	}

	task := domain.TaskName(opts.Executable)
	if _, ok := params.Get(domain.TaskParamName); !ok {
		params = params.With(domain.TaskParamName, task)
	}

	if opts.Noop {
		params = params.With(domain.NoopParamName, true)
	}

	if err := checkDeclared(meta, params); err != nil {
		return nil, zerr.With(err, "task", task)
	}
	if err := checkNoop(meta, params); err != nil {
		return nil, zerr.With(err, "task", task)
	}

	req := &domain.ExecutionRequest{
		Executable:     opts.Executable,
		Args:           opts.Args,
		Params:         params,
		EnvPrefix:      cfg.EnvPrefix,
		InputMethod:    cfg.InputMethod,
		Timeout:        cfg.Timeout,
		MaxOutputBytes: cfg.MaxOutputBytes,
		Environment:    maps.Clone(cfg.Environment),
		Metadata:       meta,
	}

	if interp, ok := cfg.InterpreterFor(filepath.Ext(opts.Executable)); ok {
		req.Interpreter = interp
	}

	if meta != nil && meta.InputMethod != "" {
		req.InputMethod = meta.InputMethod
	}

	if opts.InputMethod != "" {
		method, err := domain.ParseInputMethod(opts.InputMethod)
		if err != nil {
			return nil, err
		}
		req.InputMethod = method
	}
	if opts.EnvPrefix != "" {
		req.EnvPrefix = opts.EnvPrefix
	}
	if opts.Timeout != nil {
		req.Timeout = *opts.Timeout
	}
	if opts.MaxOutput != nil {
		req.MaxOutputBytes = *opts.MaxOutput
	}
	if opts.Interpreter != "" {
		req.Interpreter = opts.Interpreter
	}

	return req, nil
}

// parseParams merges the JSON parameter document with key=value pairs.
// Pairs are applied last and always carry string values.
// A document starting with '@' names a file to read it from.
func parseParams(document string, pairs []string) (domain.ParameterSet, error) {
	var params domain.ParameterSet

	if document = strings.TrimSpace(document); document != "" {
		data := []byte(document)
		if path, ok := strings.CutPrefix(document, "@"); ok {
			// #nosec G304 -- the parameter file is named by the user
			fileData, err := os.ReadFile(path)
			if err != nil {
				return params, zerr.With(zerr.Wrap(err, "failed to read parameters file"), "path", path)
			}
			data = fileData
		}

		parsed, err := domain.ParseParameters(data)
		if err != nil {
			return params, err
		}
		params = parsed
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return params, zerr.With(zerr.Wrap(domain.ErrInvalidParameterName, "expected key=value"), "param", pair)
		}
		params = params.With(key, value)
	}

	return params, nil
}

// checkDeclared rejects parameters the task metadata does not declare.
// Names starting with an underscore are metaparameters and always accepted.
func checkDeclared(meta *domain.TaskMetadata, params domain.ParameterSet) error {
	if !meta.DeclaresParameters() {
		return nil
	}
	for _, key := range params.Keys() {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if _, ok := meta.Parameters[key]; !ok {
			return zerr.With(zerr.Wrap(domain.ErrUnknownParameter, "invalid task parameters"), "parameter", key)
		}
	}
	return nil
}

// checkNoop rejects a noop run when the task metadata does not declare noop support.
func checkNoop(meta *domain.TaskMetadata, params domain.ParameterSet) error {
	value, ok := params.Get(domain.NoopParamName)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case bool:
		ok = v
	case string:
		ok = v == "true"
	default:
		ok = false
	}
	if !ok || (meta != nil && meta.SupportsNoop) {
		return nil
	}
	return zerr.Wrap(domain.ErrNoopUnsupported, "invalid task parameters")
}
