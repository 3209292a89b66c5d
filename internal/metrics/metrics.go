// Package metrics exposes Prometheus collectors for the greeting service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes.
const (
	OutcomeTemplate = "template"
	OutcomeGeneric  = "generic"
	OutcomeAI       = "ai"
	OutcomeFallback = "fallback"
	OutcomeInvalid  = "invalid"
)

// ModeOther labels requests whose mode is neither rule nor llm.
const ModeOther = "other"

var (
	GreetingsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greeting_resolutions_total",
			Help: "Total number of greeting requests resolved, by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	AIFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greeting_ai_failures_total",
			Help: "Total number of failed calls to the generation service, by stage",
		},
		[]string{"stage"},
	)

	AssetFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greeting_asset_failures_total",
			Help: "Total number of asset load, watermark or save failures",
		},
		[]string{"step"},
	)

	ResolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "greeting_resolve_duration_seconds",
			Help:    "Duration of greeting resolution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)
