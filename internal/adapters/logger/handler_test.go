package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/taskrun/internal/adapters/logger"
)

func newTestHandler(t *testing.T, level slog.Leveler) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, buf := newTestHandler(t, slog.LevelInfo)
			slog.New(handler).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name  string
		build func(h slog.Handler) slog.Handler
		args  []any
		want  string
	}{
		{
			name:  "record attributes",
			build: func(h slog.Handler) slog.Handler { return h },
			args:  []any{"task", "lookup", "exit_code", 3},
			want:  "msg task=lookup exit_code=3\n",
		},
		{
			name: "handler attributes come first",
			build: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("fingerprint", "abc")})
			},
			args: []any{"task", "lookup"},
			want: "msg fingerprint=abc task=lookup\n",
		},
		{
			name:  "group prefix",
			build: func(h slog.Handler) slog.Handler { return h.WithGroup("process") },
			args:  []any{"pid", 42},
			want:  "msg process.pid=42\n",
		},
		{
			name:  "nested groups",
			build: func(h slog.Handler) slog.Handler { return h.WithGroup("a").WithGroup("b") },
			args:  []any{"k", "v"},
			want:  "msg a.b.k=v\n",
		},
		{
			name: "attributes keep the group they were added under",
			build: func(h slog.Handler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.String("outer", "1")}).WithGroup("g")
			},
			args: []any{"inner", "2"},
			want: "msg outer=1 g.inner=2\n",
		},
		{
			name:  "empty group name is ignored",
			build: func(h slog.Handler) slog.Handler { return h.WithGroup("") },
			args:  []any{"key", "val"},
			want:  "msg key=val\n",
		},
		{
			name:  "empty value",
			build: func(h slog.Handler) slog.Handler { return h },
			args:  []any{"empty", ""},
			want:  "msg empty=\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, buf := newTestHandler(t, slog.LevelInfo)
			slog.New(tt.build(handler)).Info("msg", tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		recordLevel  slog.Level
		wantEnabled  bool
	}{
		{name: "debug below info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelDebug, wantEnabled: false},
		{name: "info at info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelInfo, wantEnabled: true},
		{name: "error above info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelError, wantEnabled: true},
		{name: "debug at debug", handlerLevel: slog.LevelDebug, recordLevel: slog.LevelDebug, wantEnabled: true},
		{name: "warn at error", handlerLevel: slog.LevelError, recordLevel: slog.LevelWarn, wantEnabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t, tt.handlerLevel)
			assert.Equal(t, tt.wantEnabled, handler.Enabled(t.Context(), tt.recordLevel))
		})
	}
}

func TestPrettyHandler_SharedLevelVar(t *testing.T) {
	level := &slog.LevelVar{}
	handler, _ := newTestHandler(t, level)

	assert.False(t, handler.Enabled(t.Context(), slog.LevelDebug))
	level.Set(slog.LevelDebug)
	assert.True(t, handler.Enabled(t.Context(), slog.LevelDebug))
}

func TestPrettyHandler_NilOptions(t *testing.T) {
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.True(t, handler.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, handler.Enabled(t.Context(), slog.LevelDebug))
}
