package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	HTTPRequestsTotal       metric.Int64Counter
	HTTPRequestDuration     metric.Float64Histogram
	DiscoveryRequestsTotal  metric.Int64Counter
	ProviderCallDuration    metric.Float64Histogram
	ProviderCallErrorsTotal metric.Int64Counter
	PoolOperationsTotal     metric.Int64Counter
	ActiveSessionsGauge     metric.Int64Gauge
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider; before
// a provider is installed the global is a no-op, so instruments created
// here are safe to use from tests.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("travion-discovery")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.DiscoveryRequestsTotal, err = meter.Int64Counter(
			"discovery_requests_total",
			metric.WithDescription("Total number of category discovery runs"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create discovery_requests_total: %v", err)
		}

		m.ProviderCallDuration, err = meter.Float64Histogram(
			"provider_call_duration_seconds",
			metric.WithDescription("Duration of places provider calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_call_duration_seconds: %v", err)
		}

		m.ProviderCallErrorsTotal, err = meter.Int64Counter(
			"provider_call_errors_total",
			metric.WithDescription("Total number of failed places provider calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_call_errors_total: %v", err)
		}

		m.PoolOperationsTotal, err = meter.Int64Counter(
			"pool_operations_total",
			metric.WithDescription("Total number of suggestion pool mutations"),
			metric.WithUnit("{operation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create pool_operations_total: %v", err)
		}

		m.ActiveSessionsGauge, err = meter.Int64Gauge(
			"active_sessions_current",
			metric.WithDescription("Current number of live discovery sessions"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create active_sessions_current: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance,
// initializing against the current global MeterProvider on first use.
// The sync.Once inside InitAppMetrics is the only guard; no unlocked
// fast path, so concurrent first use stays race free.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
