// Package metrics holds the Prometheus counters of the daily pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery results.
const (
	ResultSent   = "sent"
	ResultEmpty  = "empty"
	ResultFailed = "failed"
)

// Generator fallback reasons.
const (
	ReasonDisabled = "disabled"
	ReasonError    = "error"
)

var (
	// Ticks counts scheduler evaluations.
	Ticks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "birthday_bot",
		Name:      "ticks_total",
		Help:      "Number of scheduler ticks evaluated.",
	})

	// Deliveries counts per-chat delivery outcomes.
	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "birthday_bot",
		Name:      "deliveries_total",
		Help:      "Per-chat delivery attempts, by result.",
	}, []string{"result"})

	// HolidayFailures counts holiday lookups that degraded to an empty list.
	HolidayFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "birthday_bot",
		Name:      "holiday_lookup_failures_total",
		Help:      "Holiday lookups that failed and returned no holidays.",
	})

	// GeneratorFallbacks counts congratulations served from the static template.
	GeneratorFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "birthday_bot",
		Name:      "generator_fallbacks_total",
		Help:      "Congratulations that used the static template, by reason.",
	}, []string{"reason"})
)
