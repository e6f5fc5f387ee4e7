package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskrun/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestResolveEnvironment(t *testing.T) {
	sysEnv := []string{"PATH=/usr/bin", "HOME=/root", "AWS_SECRET=shh", "MALFORMED"}
	taskEnv := map[string]string{"PT_host": "x", "HOME": "/tmp/home"}

	got := resolveEnvironment(sysEnv, []string{"PATH", "HOME"}, taskEnv)

	assert.Equal(t, []string{"HOME=/tmp/home", "PATH=/usr/bin", "PT_host=x"}, got)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "task")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	plain := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))

	got, err := lookPath("task", []string{"PATH=/nonexistent" + string(os.PathListSeparator) + dir})
	require.NoError(t, err)
	assert.Equal(t, exe, got)

	_, err = lookPath("data", []string{"PATH=" + dir})
	assert.ErrorIs(t, err, exec.ErrNotFound)

	_, err = lookPath("task", nil)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestCapture(t *testing.T) {
	c := newCapture(5)

	n, err := c.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, c.Truncated())

	n, err = c.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n, "excess bytes are accepted and dropped")
	assert.True(t, c.Truncated())
	assert.Equal(t, "abcde", string(c.Bytes()))

	n, err = c.Write([]byte("more"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "abcde", string(c.Bytes()))
}

func TestCapture_DefaultLimit(t *testing.T) {
	c := newCapture(0)
	_, _ = c.Write(make([]byte, 1024))
	assert.False(t, c.Truncated())
}

func TestLineLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		mockLogger.EXPECT().Debug("task stderr", "line", "part1part2"),
		mockLogger.EXPECT().Debug("task stderr", "line", "second"),
		mockLogger.EXPECT().Debug("task stderr", "line", "tail"),
	)

	w := &lineLogger{logger: mockLogger, msg: "task stderr"}
	_, _ = w.Write([]byte("part1"))
	_, _ = w.Write([]byte("part2\nsecond\nta"))
	_, _ = w.Write([]byte("il"))
	w.Flush()
	w.Flush()
}
