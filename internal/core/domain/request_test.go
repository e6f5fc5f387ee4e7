package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskrun/internal/core/domain"
)

func TestParseInputMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.InputMethod
		wantErr bool
	}{
		{input: "", want: domain.InputBoth},
		{input: "env", want: domain.InputEnv},
		{input: "environment", want: domain.InputEnv},
		{input: "STDIN", want: domain.InputStdin},
		{input: " both ", want: domain.InputBoth},
		{input: "powershell", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseInputMethod(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInputMethod))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInputMethod_Channels(t *testing.T) {
	assert.True(t, domain.InputEnv.UsesEnv())
	assert.False(t, domain.InputEnv.UsesStdin())
	assert.False(t, domain.InputStdin.UsesEnv())
	assert.True(t, domain.InputStdin.UsesStdin())
	assert.True(t, domain.InputBoth.UsesEnv())
	assert.True(t, domain.InputBoth.UsesStdin())
}

func TestExecutionRequest_WithDefaults(t *testing.T) {
	req := domain.ExecutionRequest{Executable: "/bin/true"}.WithDefaults()

	assert.Equal(t, domain.InputBoth, req.InputMethod)
	assert.Equal(t, domain.DefaultEnvPrefix, req.EnvPrefix)
	assert.Equal(t, domain.DefaultMaxOutputBytes, req.MaxOutputBytes)
	assert.Zero(t, req.Timeout)
}

func TestExecutionRequest_Validate(t *testing.T) {
	valid := func() domain.ExecutionRequest {
		return domain.ExecutionRequest{Executable: "/bin/true"}.WithDefaults()
	}

	tests := []struct {
		name   string
		mutate func(r *domain.ExecutionRequest)
		target error
	}{
		{name: "valid", mutate: func(*domain.ExecutionRequest) {}},
		{
			name:   "missing executable",
			mutate: func(r *domain.ExecutionRequest) { r.Executable = " " },
			target: domain.ErrMissingExecutable,
		},
		{
			name:   "bad input method",
			mutate: func(r *domain.ExecutionRequest) { r.InputMethod = "pipe" },
			target: domain.ErrInvalidInputMethod,
		},
		{
			name:   "negative timeout",
			mutate: func(r *domain.ExecutionRequest) { r.Timeout = -time.Second },
			target: domain.ErrInvalidTimeout,
		},
		{
			name:   "negative output limit",
			mutate: func(r *domain.ExecutionRequest) { r.MaxOutputBytes = -1 },
			target: domain.ErrInvalidOutputLimit,
		},
		{
			name: "env name with equals sign",
			mutate: func(r *domain.ExecutionRequest) {
				r.Params = domain.NewParameterSet(map[string]any{"a=b": "x"})
			},
			target: domain.ErrInvalidParameterName,
		},
		{
			name: "stdin only accepts any name",
			mutate: func(r *domain.ExecutionRequest) {
				r.InputMethod = domain.InputStdin
				r.Params = domain.NewParameterSet(map[string]any{"a=b": "x"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.target == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Contains(t, err.Error(), "invalid execution request")
		})
	}
}

func TestExecutionRequest_Argv(t *testing.T) {
	req := domain.ExecutionRequest{Executable: "task.py", Args: []string{"--x"}}
	assert.Equal(t, []string{"task.py", "--x"}, req.Argv())

	req.Interpreter = "/usr/bin/python3"
	assert.Equal(t, []string{"/usr/bin/python3", "task.py", "--x"}, req.Argv())
}

func TestExecutionRequest_Fingerprint(t *testing.T) {
	a := domain.ExecutionRequest{
		Executable: "/tasks/lookup",
		Params:     domain.NewParameterSet(map[string]any{"host": "a", "port": 22}),
	}
	b := domain.ExecutionRequest{
		Executable: "/tasks/lookup",
		Params:     domain.NewParameterSet(map[string]any{"port": 22, "host": "a"}),
	}
	c := domain.ExecutionRequest{
		Executable: "/tasks/lookup",
		Params:     domain.NewParameterSet(map[string]any{"host": "b", "port": 22}),
	}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)
}
