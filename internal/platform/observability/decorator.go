package observability

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Decorator holds the tracer, logger and meter used by the service decorators of the
// domains. Every operation gets a span, a log record and a duration measurement.
type Decorator struct {
	scope     string
	tracer    trace.Tracer
	logger    *slog.Logger
	meter     metric.Meter
	durations metric.Float64Histogram

	mu       sync.Mutex
	counters map[string]metric.Int64Counter
}

// Option configures a Decorator.
type Option func(*Decorator)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decorator) {
		d.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(d *Decorator) {
		d.tracer = tr
	}
}

// WithMeter injects the meter used to create the instruments.
func WithMeter(m metric.Meter) Option {
	return func(d *Decorator) {
		d.meter = m
	}
}

// WithInstruments takes logger, tracer and meter from the process instruments.
func WithInstruments(i *Instruments, name string) Option {
	return func(d *Decorator) {
		if i == nil {
			return
		}
		d.logger = i.Logger
		d.tracer = i.Tracer(name)
		d.meter = i.Meter(name)
	}
}

// NewDecorator creates a decorator for scope, the prefix of the metric names
// (club, teams, ...).
func NewDecorator(scope string, opts ...Option) *Decorator {
	d := &Decorator{scope: scope, counters: make(map[string]metric.Int64Counter)}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.tracer == nil {
		d.tracer = nooptrace.NewTracerProvider().Tracer(scope)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.meter != nil {
		d.durations, _ = d.meter.Float64Histogram(scope+".service.duration",
			metric.WithDescription("Duration of the use cases"),
			metric.WithUnit("ms"),
		)
	}
	return d
}

// Run executes fn inside a span named operation. A failure is recorded on the span
// and logged on error level, success is logged on info level.
func (d *Decorator) Run(ctx context.Context, operation string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := d.Start(ctx, operation, attrs...)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	if d.durations != nil {
		d.durations.Record(ctx, float64(time.Since(start).Microseconds())/1000,
			metric.WithAttributes(attribute.String("operation", operation), attribute.Bool("error", err != nil)))
	}
	logAttrs := toLogAttrs(attrs)
	if err != nil {
		return d.Fail(ctx, span, err, operation+" failed", logAttrs...)
	}
	d.Info(ctx, operation+" succeeded", logAttrs...)
	return nil
}

// Start opens a span.
func (d *Decorator) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Info logs on info level.
func (d *Decorator) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	d.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Fail records err on span, logs it and returns it unchanged.
func (d *Decorator) Fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	d.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

// Count adds value to the counter <scope>.service.<name>.
func (d *Decorator) Count(ctx context.Context, name string, value int64, attrs ...attribute.KeyValue) {
	if d.meter == nil {
		return
	}
	d.mu.Lock()
	counter, ok := d.counters[name]
	if !ok {
		var err error
		counter, err = d.meter.Int64Counter(d.scope + ".service." + name)
		if err != nil {
			d.mu.Unlock()
			return
		}
		d.counters[name] = counter
	}
	d.mu.Unlock()
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

func toLogAttrs(attrs []attribute.KeyValue) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, slog.Any(string(attr.Key), attr.Value.AsInterface()))
	}
	return out
}
