// Copyright 2025 go-highway Authors
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

// Package metrics records inference timings and cross-pipeline mismatches
// in a prometheus registry that can be written out in text format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Latency buckets in seconds, 10µs .. ~5s. Short inputs on small models
// finish far below prometheus.DefBuckets' lowest bucket.
var latencyBuckets = prometheus.ExponentialBuckets(10e-6, 2.5, 15)

// Recorder owns a private registry with the harness metrics.
type Recorder struct {
	registry *prometheus.Registry

	inferenceDuration *prometheus.HistogramVec
	inferences        *prometheus.CounterVec
	mismatches        *prometheus.CounterVec
	workers           prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		inferenceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hdc_inference_duration_seconds",
				Help:    "Latency of one inference call",
				Buckets: latencyBuckets,
			},
			[]string{"strategy"},
		),
		inferences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hdc_inferences_total",
				Help: "Total number of inference calls",
			},
			[]string{"strategy", "result"},
		),
		mismatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hdc_prediction_mismatches_total",
				Help: "Predictions that differ from the sequential pipeline",
			},
			[]string{"strategy"},
		),
		workers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hdc_pool_workers",
				Help: "Worker goroutines in the inference pool",
			},
		),
	}
	r.registry.MustRegister(r.inferenceDuration, r.inferences, r.mismatches, r.workers)
	return r
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveInference records one successful call.
func (r *Recorder) ObserveInference(strategy string, d time.Duration) {
	r.inferenceDuration.WithLabelValues(strategy).Observe(d.Seconds())
	r.inferences.WithLabelValues(strategy, "ok").Inc()
}

// ObserveError records one failed call.
func (r *Recorder) ObserveError(strategy string) {
	r.inferences.WithLabelValues(strategy, "error").Inc()
}

// IncMismatch records one prediction that disagreed with the baseline.
func (r *Recorder) IncMismatch(strategy string) {
	r.mismatches.WithLabelValues(strategy).Inc()
}

// SetWorkers records the pool size.
func (r *Recorder) SetWorkers(n int) {
	r.workers.Set(float64(n))
}

// WriteToTextfile writes the registry to path in the prometheus text
// format, atomically, for node_exporter's textfile collector.
func (r *Recorder) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
