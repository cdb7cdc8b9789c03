package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDecoratorRun(t *testing.T) {
	var logs bytes.Buffer
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	meters := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	d := NewDecorator("club",
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
		WithTracer(provider.Tracer("test")),
		WithMeter(meters.Meter("test")),
	)
	ctx := context.Background()

	require.NoError(t, d.Run(ctx, "GetMembers", func(context.Context) error { return nil }, attribute.Int("offset", 10)))
	failure := errors.New("boom")
	require.ErrorIs(t, d.Run(ctx, "GetMember", func(context.Context) error { return failure }), failure)
	d.Count(ctx, "imported", 3)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "GetMembers", spans[0].Name())
	require.Equal(t, codes.Error, spans[1].Status().Code)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 2)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	require.Equal(t, "GetMembers succeeded", record["msg"])
	require.EqualValues(t, 10, record["offset"])
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	require.Equal(t, "ERROR", record["level"])
	require.Equal(t, "boom", record["error"])

	var metrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &metrics))
	names := map[string]bool{}
	for _, scope := range metrics.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	require.True(t, names["club.service.duration"])
	require.True(t, names["club.service.imported"])
}
