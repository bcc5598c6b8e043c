package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/tommurray222/candid-hospitality/internal/config"
	"github.com/tommurray222/candid-hospitality/pkg/contracts"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

const (
	ServiceName = "candid-hospitality"
	MeterName   = "candid"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	// TraceWriter receives pretty-printed spans; nil means stderr.
	TraceWriter   io.Writer
	EnableMetrics bool
	// MetricsFile is the Prometheus textfile written on Shutdown; empty skips it.
	MetricsFile string
	SampleRatio float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *PipelineMetrics
	Logger         *slog.Logger

	metricsFile string
}

// DefaultOTelConfig returns a configuration with tracing off and metrics on
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: contracts.Version,
		Environment:    env,
		EnableTracing:  false,
		EnableMetrics:  true,
		SampleRatio:    1.0,
	}
}

// OTelConfigFrom maps the telemetry section of the configuration.
// Relative file names are resolved against the output directory.
func OTelConfigFrom(cfg config.TelemetryConfig, paths *config.Paths, traceWriter io.Writer) *OTelConfig {
	oc := DefaultOTelConfig()
	oc.EnableTracing = cfg.TracingEnabled
	oc.EnableMetrics = cfg.MetricsEnabled
	oc.TraceWriter = traceWriter
	if cfg.MetricsFile != "" && paths != nil {
		oc.MetricsFile = paths.GetOutputPath(cfg.MetricsFile)
	} else {
		oc.MetricsFile = cfg.MetricsFile
	}
	return oc
}

// InitializeOTel sets up tracing and metrics. Disabled signals get no-op
// implementations so callers never need nil checks.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	logger.DebugContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{
		Logger:      logger,
		Tracer:      tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:       metricnoop.NewMeterProvider().Meter(MeterName),
		metricsFile: cfg.MetricsFile,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	metrics, err := CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	providers.Metrics = metrics

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

// initializeTracing sets up the stdout span exporter
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	w := cfg.TraceWriter
	if w == nil {
		w = os.Stderr
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	otel.SetTracerProvider(tp)

	providers.Logger.DebugContext(ctx, "Tracing initialized",
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics sets up a Prometheus-backed meter on a private registry
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	reg := prometheus.NewRegistry()

	exporter, err := otelprom.New(
		otelprom.WithRegisterer(reg),
		otelprom.WithoutTargetInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = reg
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

	otel.SetMeterProvider(mp)

	providers.Logger.DebugContext(ctx, "Metrics initialized",
		slog.String("textfile", cfg.MetricsFile))

	return nil
}

// PipelineMetrics holds the counters and histograms recorded during a run
type PipelineMetrics struct {
	RunsTotal      metric.Int64Counter
	StepExecutions metric.Int64Counter
	StepDuration   metric.Float64Histogram
	RowsRead       metric.Int64Counter
	RowsKept       metric.Int64Counter
	RowsDropped    metric.Int64Counter
	RowsFlagged    metric.Int64Counter
	Errors         metric.Int64Counter
}

// CreatePipelineMetrics creates application-specific metrics
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	runs, err := meter.Int64Counter(
		"candid_pipeline_runs",
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, err
	}

	steps, err := meter.Int64Counter(
		"candid_step_executions",
		metric.WithDescription("Total number of pipeline step executions"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"candid_step_duration_seconds",
		metric.WithDescription("Pipeline step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rowsRead, err := meter.Int64Counter(
		"candid_rows_read",
		metric.WithDescription("Rows read from input tables"),
	)
	if err != nil {
		return nil, err
	}

	rowsKept, err := meter.Int64Counter(
		"candid_rows_kept",
		metric.WithDescription("Rows retained after cleaning"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"candid_rows_dropped",
		metric.WithDescription("Rows removed by cleaning"),
	)
	if err != nil {
		return nil, err
	}

	rowsFlagged, err := meter.Int64Counter(
		"candid_rows_flagged",
		metric.WithDescription("Rows kept with a data quality flag"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"candid_errors",
		metric.WithDescription("Total number of pipeline errors"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RunsTotal:      runs,
		StepExecutions: steps,
		StepDuration:   stepDuration,
		RowsRead:       rowsRead,
		RowsKept:       rowsKept,
		RowsDropped:    rowsDropped,
		RowsFlagged:    rowsFlagged,
		Errors:         errs,
	}, nil
}

// RecordRun counts a finished pipeline run
func (m *PipelineMetrics) RecordRun(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	m.RunsTotal.Add(ctx, 1, metric.WithAttributes(statusAttr(success)))
}

// RecordStep records execution count and duration for one pipeline step
func (m *PipelineMetrics) RecordStep(ctx context.Context, stepID string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("step", stepID),
		statusAttr(err == nil),
	}
	m.StepExecutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.StepDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		m.Errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("step", stepID),
			attribute.String("error.type", fmt.Sprintf("%T", err)),
		))
	}
}

// RecordTable records the cleaning outcome for one table
func (m *PipelineMetrics) RecordTable(ctx context.Context, table string, counts domain.TableCounts) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("table", table))
	m.RowsRead.Add(ctx, int64(counts.Read), attrs)
	m.RowsKept.Add(ctx, int64(counts.Kept), attrs)
	m.RowsDropped.Add(ctx, int64(counts.Dropped), attrs)
	m.RowsFlagged.Add(ctx, int64(counts.Flagged), attrs)
}

func statusAttr(success bool) attribute.KeyValue {
	if success {
		return attribute.String("status", "success")
	}
	return attribute.String("status", "failure")
}

// WriteMetricsTextfile dumps the registry in Prometheus text format
func (p *OTelProviders) WriteMetricsTextfile(path string) error {
	if p.Registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, p.Registry)
}

// Shutdown writes the metrics textfile and flushes both providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.metricsFile != "" {
		if err := p.WriteMetricsTextfile(p.metricsFile); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.DebugContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// AddSpanEvent adds an event to the current span with structured attributes
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	span.AddEvent(name, trace.WithAttributes(attrs...))
}
