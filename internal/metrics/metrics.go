// Package metrics exposes Prometheus counters for the plan pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlansRequested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plan_requests_total",
		Help: "Total number of maintenance plan requests that passed validation",
	})

	PlansSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plan_success_total",
		Help: "Total number of requests that produced a parsed plan",
	})

	RepairAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plan_repair_attempts_total",
		Help: "Total number of corrective repair calls issued after a failed parse",
	})

	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plan_parse_failures_total",
		Help: "Total number of requests where the repaired output still failed strict parse",
	})

	FallbackCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plan_backend_fallback_total",
		Help: "Total number of calls answered by the bare (model + prompt) fallback",
	})
)
