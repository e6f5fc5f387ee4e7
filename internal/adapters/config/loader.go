// Package config loads the project configuration and task metadata files.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/taskrun/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// MetadataExt is the extension of the metadata file that accompanies a task.
const MetadataExt = ".json"

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads path when it is set, otherwise it walks up from cwd looking for taskrun.yaml.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path == "" {
		found, ok := findConfiguration(cwd)
		if !ok {
			l.Logger.Debug("no configuration file found", "cwd", cwd)
			return &domain.Config{}, nil
		}
		path = found
	}

	var projectfile Projectfile
	if err := readAndUnmarshalYAML(path, &projectfile, domain.ErrConfigReadFailed, domain.ErrConfigParseFailed); err != nil {
		return nil, err
	}

	cfg, err := buildConfig(path, &projectfile)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	l.Logger.Debug("loaded configuration", "path", path)
	return cfg, nil
}

// LoadMetadata reads "<task without extension>.json" from the directory of the executable.
func (l *Loader) LoadMetadata(executable string) (*domain.TaskMetadata, error) {
	path := MetadataPath(executable)
	if path == executable {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var metadatafile Metadatafile
	if err := readAndUnmarshalYAML(path, &metadatafile, domain.ErrMetadataReadFailed, domain.ErrMetadataParseFailed); err != nil {
		return nil, err
	}

	meta, err := buildMetadata(&metadatafile)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	l.Logger.Debug("loaded task metadata", "path", path, "parameters", len(meta.Parameters))
	return meta, nil
}

// MetadataPath returns the metadata file path for a task executable.
func MetadataPath(executable string) string {
	ext := filepath.Ext(executable)
	return strings.TrimSuffix(executable, ext) + MetadataExt
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func buildConfig(path string, pf *Projectfile) (*domain.Config, error) {
	cfg := &domain.Config{
		Path:           path,
		EnvPrefix:      pf.EnvPrefix,
		MaxOutputBytes: pf.MaxOutputBytes,
		Environment:    pf.Environment,
	}

	if pf.InputMethod != "" {
		method, err := domain.ParseInputMethod(pf.InputMethod)
		if err != nil {
			return nil, zerr.With(err, "field", "inputMethod")
		}
		cfg.InputMethod = method
	}

	if pf.Timeout != "" {
		timeout, err := time.ParseDuration(pf.Timeout)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "timeout")
		}
		if timeout < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidTimeout, domain.ErrConfigParseFailed.Error()), "field", "timeout")
		}
		cfg.Timeout = timeout
	}

	if pf.MaxOutputBytes < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidOutputLimit, domain.ErrConfigParseFailed.Error()), "field", "maxOutputBytes")
	}

	if len(pf.Interpreters) > 0 {
		cfg.Interpreters = make(map[string]string, len(pf.Interpreters))
		for ext, interp := range pf.Interpreters {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.Interpreters[ext] = interp
		}
	}

	return cfg, nil
}

func buildMetadata(mf *Metadatafile) (*domain.TaskMetadata, error) {
	meta := &domain.TaskMetadata{
		Description:  mf.Description,
		SupportsNoop: mf.SupportsNoop,
	}

	if mf.InputMethod != "" {
		method, err := domain.ParseInputMethod(mf.InputMethod)
		if err != nil {
			return nil, zerr.With(err, "field", "input_method")
		}
		meta.InputMethod = method
	}

	if len(mf.Parameters) > 0 {
		meta.Parameters = make(map[string]domain.ParameterSpec, len(mf.Parameters))
		for name, dto := range mf.Parameters {
			meta.Parameters[name] = domain.ParameterSpec{
				Type:        dto.Type,
				Description: dto.Description,
				Sensitive:   dto.Sensitive,
			}
		}
	}

	return meta, nil
}

func readAndUnmarshalYAML[T any](path string, target *T, readErr, parseErr error) error {
	// #nosec G304 -- path is given by the user or found by discovery
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, readErr.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, parseErr.Error()), "path", path)
	}

	return nil
}
