package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/taskrun/internal/adapters/telemetry"
	"go.trai.ch/taskrun/internal/core/ports"
	"go.trai.ch/taskrun/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
	var _ sdktrace.SpanProcessor = (*telemetry.LogBridge)(nil)
}

func setupRecorder(t *testing.T) (*tracetest.SpanRecorder, *telemetry.OTelTracer) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, telemetry.NewOTelTracerWithProvider(tp, "test-tracer")
}

func TestOTelTracer_Attributes(t *testing.T) {
	sr, tracer := setupRecorder(t)

	_, span := tracer.Start(context.Background(), "lookup")
	span.SetAttribute("str", "v")
	span.SetAttribute("int", 3)
	span.SetAttribute("int64", int64(4))
	span.SetAttribute("float", 1.5)
	span.SetAttribute("bool", true)
	span.SetAttribute("list", []string{"a", "b"})
	span.SetAttribute("duration", 2*time.Second)
	span.SetAttribute("other", struct{ A int }{A: 1})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "lookup", spans[0].Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("str", "v"),
		attribute.Int("int", 3),
		attribute.Int64("int64", 4),
		attribute.Float64("float", 1.5),
		attribute.Bool("bool", true),
		attribute.StringSlice("list", []string{"a", "b"}),
		attribute.String("duration", "2s"),
		attribute.String("other", "{1}"),
	}, spans[0].Attributes())
}

func TestOTelTracer_RecordError(t *testing.T) {
	sr, tracer := setupRecorder(t)

	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOTelTracer_NestedSpans(t *testing.T) {
	sr, tracer := setupRecorder(t)

	ctx, parent := tracer.Start(context.Background(), "parent")
	_, child := tracer.Start(ctx, "child")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}

func TestLogBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug("span finished", gomock.Any()).Do(func(_ string, args ...any) {
		fields := make(map[string]any)
		for i := 0; i+1 < len(args); i += 2 {
			fields[args[i].(string)] = args[i+1]
		}
		assert.Equal(t, "lookup", fields["span"])
		assert.Equal(t, "success", fields["taskrun.result"])
		assert.Equal(t, "task failed", fields["status"])
		assert.Contains(t, fields, "trace_id")
		assert.Contains(t, fields, "duration")
	})

	tracer := telemetry.NewOTelTracerWithProvider(telemetry.NewProvider(mockLogger), "test")
	_, span := tracer.Start(context.Background(), "lookup")
	span.SetAttribute("taskrun.result", "success")
	span.RecordError(errors.New("task failed"))
	span.End()
}

func TestNewOTelTracer_UsesGlobalProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	otel.SetTracerProvider(tp)

	_, span := telemetry.NewOTelTracer("taskrun").Start(context.Background(), "lookup")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "lookup", spans[0].Name())
	assert.Equal(t, "taskrun", spans[0].InstrumentationScope().Name)
}
