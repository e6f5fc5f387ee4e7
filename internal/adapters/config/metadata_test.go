package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskrun/internal/adapters/config"
	"go.trai.ch/taskrun/internal/core/domain"
)

func TestMetadataPath(t *testing.T) {
	assert.Equal(t, "/tasks/lookup.json", config.MetadataPath("/tasks/lookup.sh"))
	assert.Equal(t, "/tasks/lookup.json", config.MetadataPath("/tasks/lookup"))
	assert.Equal(t, "tasks/init.d.json", config.MetadataPath("tasks/init.d.rb"))
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	task := filepath.Join(dir, "lookup.sh")
	writeFile(t, task, "#!/bin/sh\n")
	writeFile(t, filepath.Join(dir, "lookup.json"), `{
  "description": "Look up a host",
  "input_method": "stdin",
  "supports_noop": true,
  "parameters": {
    "host": {"type": "String[1]", "description": "Host to resolve"},
    "token": {"type": "Optional[String]", "sensitive": true}
  }
}`)

	meta, err := newLoader(t).LoadMetadata(task)
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "Look up a host", meta.Description)
	assert.Equal(t, domain.InputStdin, meta.InputMethod)
	assert.True(t, meta.SupportsNoop)
	assert.Equal(t, []string{"host", "token"}, meta.ParameterNames())
	assert.Equal(t, "String[1]", meta.Parameters["host"].Type)
	assert.Equal(t, "Host to resolve", meta.Parameters["host"].Description)
	assert.False(t, meta.IsSensitive("host"))
	assert.True(t, meta.IsSensitive("token"))
}

func TestLoadMetadata_CompactJSON(t *testing.T) {
	dir := t.TempDir()
	task := filepath.Join(dir, "echo")
	writeFile(t, task, "#!/bin/sh\n")
	writeFile(t, filepath.Join(dir, "echo.json"), `{"parameters":{"message":{"type":"String"}}}`)

	meta, err := newLoader(t).LoadMetadata(task)
	require.NoError(t, err)
	assert.True(t, meta.DeclaresParameters())
	assert.Empty(t, meta.InputMethod)
}

func TestLoadMetadata_Missing(t *testing.T) {
	dir := t.TempDir()
	task := filepath.Join(dir, "lookup.sh")
	writeFile(t, task, "#!/bin/sh\n")

	meta, err := newLoader(t).LoadMetadata(task)
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestLoadMetadata_ExecutableIsJSON(t *testing.T) {
	dir := t.TempDir()
	task := filepath.Join(dir, "data.json")
	writeFile(t, task, `{"description": 1}`)

	meta, err := newLoader(t).LoadMetadata(task)
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestLoadMetadata_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
		msg     string
	}{
		{name: "malformed", content: `{"description": `, msg: domain.ErrMetadataParseFailed.Error()},
		{name: "unsupported input method", content: `{"input_method": "powershell"}`, target: domain.ErrInvalidInputMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			task := filepath.Join(dir, "task.sh")
			writeFile(t, task, "#!/bin/sh\n")
			writeFile(t, filepath.Join(dir, "task.json"), tt.content)

			_, err := newLoader(t).LoadMetadata(task)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestLoadMetadata_UnreadableIsError(t *testing.T) {
	dir := t.TempDir()
	task := filepath.Join(dir, "task.sh")
	writeFile(t, task, "#!/bin/sh\n")
	// A directory in place of the metadata file cannot be read.
	writeFile(t, filepath.Join(dir, "task.json", "keep"), "")

	_, err := newLoader(t).LoadMetadata(task)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMetadataReadFailed.Error())
}
