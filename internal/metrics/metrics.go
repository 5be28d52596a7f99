// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "promptwizard"

// AI request outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeCached   = "cached"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Import record results.
const (
	ImportCreated = "created"
	ImportUpdated = "updated"
	ImportSkipped = "skipped"
)

// Metrics groups the application counters. A nil *Metrics is valid and
// records nothing, so callers that do not care about metrics can pass nil.
type Metrics struct {
	registry *prometheus.Registry

	promptsGenerated prometheus.Counter
	aiRequests       *prometheus.CounterVec
	importRecords    *prometheus.CounterVec
}

// New creates a private registry with the application counters plus the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		promptsGenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prompts_generated_total",
			Help:      "Prompts rendered from idea data.",
		}),
		aiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "AI wizard requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		importRecords: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "library_import_records_total",
			Help:      "Imported library records by result.",
		}, []string{"result"}),
	}
}

// PromptGenerated counts one rendered prompt.
func (m *Metrics) PromptGenerated() {
	if m == nil {
		return
	}
	m.promptsGenerated.Inc()
}

// AIRequest counts one AI wizard call.
func (m *Metrics) AIRequest(operation, outcome string) {
	if m == nil {
		return
	}
	m.aiRequests.WithLabelValues(operation, outcome).Inc()
}

// ImportRecords adds n imported records with the given result.
func (m *Metrics) ImportRecords(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.importRecords.WithLabelValues(result).Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
