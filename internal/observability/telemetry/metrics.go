package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carevoice_commands_total",
		Help: "Voice commands processed, by command tag and outcome",
	}, []string{"command", "outcome"})

	CommandLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "carevoice_command_latency_seconds",
		Help:    "End-to-end latency of one voice command",
		Buckets: prometheus.DefBuckets,
	})

	RecordsSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carevoice_records_saved_total",
		Help: "Care records persisted, by care type",
	}, []string{"care_type"})

	TranscriptionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carevoice_transcription_failures_total",
		Help: "Transcriptions that errored or produced no result",
	})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "carevoice_database_latency_seconds",
		Help:    "Latency of repository queries",
		Buckets: prometheus.DefBuckets,
	})
)
