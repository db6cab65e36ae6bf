package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Scans counts scan requests by dictionary and mode.
	Scans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ac_scans_total",
			Help: "Number of scans served per dictionary and mode",
		},
		[]string{"dictionary", "mode"},
	)

	// Matches counts reported matches.
	Matches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ac_matches_total",
			Help: "Number of matches reported per dictionary",
		},
		[]string{"dictionary"},
	)

	// ScannedBytes counts the bytes of text scanned.
	ScannedBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ac_scanned_bytes_total",
			Help: "Bytes of text scanned per dictionary",
		},
		[]string{"dictionary"},
	)

	// ScanDuration observes the time spent scanning one request.
	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ac_scan_duration_seconds",
			Help:    "Time spent scanning a single request",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"dictionary"},
	)

	// Patterns is the number of patterns loaded per dictionary.
	Patterns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ac_dictionary_patterns",
			Help: "Number of patterns in each loaded dictionary",
		},
		[]string{"dictionary"},
	)

	// Reloads counts dictionary (re)loads by result.
	Reloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ac_dictionary_reloads_total",
			Help: "Dictionary loads per dictionary and result (ok, error, cached)",
		},
		[]string{"dictionary", "result"},
	)

	// StreamSessions is the number of open streaming sessions.
	StreamSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ac_stream_sessions",
		Help: "Open websocket streaming sessions",
	})
)
