package domain

import "time"

// ConfigFileName is the project configuration file discovered by walking up from the working directory.
const ConfigFileName = "taskrun.yaml"

// Config holds project-wide defaults for task execution.
// Zero values mean "not configured" and leave the request defaults in place.
type Config struct {
	// Path is the file the configuration was loaded from, empty when none was found.
	Path           string
	EnvPrefix      string
	InputMethod    InputMethod
	Timeout        time.Duration
	MaxOutputBytes int
	// Interpreters maps a file extension (".py") to the interpreter that runs it.
	Interpreters map[string]string
	Environment  map[string]string
}

// InterpreterFor returns the configured interpreter for the executable's extension.
func (c *Config) InterpreterFor(ext string) (string, bool) {
	if c == nil || ext == "" {
		return "", false
	}
	interp, ok := c.Interpreters[ext]
	return interp, ok && interp != ""
}
