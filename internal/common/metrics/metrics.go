// Package metrics exposes prometheus collectors for the client's backend calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scholarhub_api_requests_total",
			Help: "Total backend API requests by operation and status code",
		},
		[]string{"operation", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scholarhub_api_request_duration_seconds",
			Help: "Backend API request duration in seconds",
		},
		[]string{"operation"},
	)

	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scholarhub_session_transitions_total",
			Help: "Session state transitions by target state",
		},
		[]string{"state"},
	)

	NotificationMarksFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scholarhub_notification_marks_failed_total",
			Help: "Mark-read calls that failed during a bulk panel open",
		},
	)
)
