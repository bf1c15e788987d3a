// Copyright 2025 The Waymount Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package waymount

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider selects the metrics backend used by a Recorder.
type Provider string

const (
	// PrometheusProvider exports metrics through a Prometheus registry.
	PrometheusProvider Provider = "prometheus"
	// StdoutProvider prints metrics to stdout; intended for development.
	StdoutProvider Provider = "stdout"
)

// Recorder instruments route-set operations with OpenTelemetry metrics.
// The zero value is unusable; construct with NewRecorder.
//
// A Recorder is optional. Without one, the route set performs no metric
// work at all.
type Recorder struct {
	provider           Provider
	meterProvider      metric.MeterProvider
	customProvider     bool
	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler

	routesRegistered metric.Int64Counter
	rehashCount      metric.Int64Counter
	rehashDuration   metric.Float64Histogram
	generateCount    metric.Int64Counter
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithProvider selects a built-in metrics backend.
func WithProvider(p Provider) RecorderOption {
	return func(r *Recorder) {
		r.provider = p
	}
}

// WithMeterProvider supplies a user-managed meter provider. The Recorder
// will not manage its lifecycle; Shutdown becomes a no-op.
func WithMeterProvider(mp metric.MeterProvider) RecorderOption {
	return func(r *Recorder) {
		r.meterProvider = mp
		r.customProvider = true
	}
}

// NewRecorder creates a metrics recorder. The default backend is
// Prometheus with a private registry, exposed via PrometheusHandler.
func NewRecorder(opts ...RecorderOption) (*Recorder, error) {
	r := &Recorder{provider: PrometheusProvider}
	for _, opt := range opts {
		opt(r)
	}

	if !r.customProvider {
		switch r.provider {
		case PrometheusProvider:
			r.prometheusRegistry = promclient.NewRegistry()
			exporter, err := prometheus.New(
				prometheus.WithRegisterer(r.prometheusRegistry),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
			}
			r.meterProvider = sdkmetric.NewMeterProvider(
				sdkmetric.WithReader(exporter),
			)
			r.prometheusHandler = promhttp.HandlerFor(
				r.prometheusRegistry,
				promhttp.HandlerOpts{},
			)
		case StdoutProvider:
			exporter, err := stdoutmetric.New()
			if err != nil {
				return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
			}
			r.meterProvider = sdkmetric.NewMeterProvider(
				sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
			)
		default:
			return nil, fmt.Errorf("unsupported metrics provider: %s", r.provider)
		}
	}

	meter := r.meterProvider.Meter("waymount.dev/routing")

	var err error
	r.routesRegistered, err = meter.Int64Counter(
		"routing_routes_registered_total",
		metric.WithDescription("Total number of routes added to the set"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create routes counter: %w", err)
	}

	r.rehashCount, err = meter.Int64Counter(
		"routing_rehash_total",
		metric.WithDescription("Total number of generation index rebuilds"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rehash counter: %w", err)
	}

	r.rehashDuration, err = meter.Float64Histogram(
		"routing_rehash_duration_seconds",
		metric.WithDescription("Duration of generation index rebuilds in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rehash histogram: %w", err)
	}

	r.generateCount, err = meter.Int64Counter(
		"routing_generate_total",
		metric.WithDescription("Total number of URL generation attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generate counter: %w", err)
	}

	return r, nil
}

// PrometheusHandler returns the scrape handler for the recorder's private
// registry, or nil when another backend is in use.
func (r *Recorder) PrometheusHandler() http.Handler {
	return r.prometheusHandler
}

// Shutdown flushes and stops the recorder's meter provider. It is a no-op
// for user-managed providers.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.customProvider {
		return nil
	}
	if mp, ok := r.meterProvider.(*sdkmetric.MeterProvider); ok {
		return mp.Shutdown(ctx)
	}
	return nil
}

func (r *Recorder) recordRouteAdded(ctx context.Context) {
	r.routesRegistered.Add(ctx, 1)
}

func (r *Recorder) recordRehash(ctx context.Context, d time.Duration, routes int) {
	attrs := metric.WithAttributes(attribute.Int("routes", routes))
	r.rehashCount.Add(ctx, 1, attrs)
	r.rehashDuration.Record(ctx, d.Seconds(), attrs)
}

func (r *Recorder) recordGenerate(ctx context.Context, outcome string) {
	r.generateCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
