// Package metrics exposes Prometheus counters for the attendance engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClockEvents counts accepted clock events by kind and resulting status.
	ClockEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_clock_events_total",
		Help: "Accepted clock events by kind and resulting attendance status.",
	}, []string{"kind", "status"})

	// ClockRejections counts rejected clock events by error kind.
	ClockRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_clock_rejections_total",
		Help: "Rejected clock events by reason.",
	}, []string{"reason"})

	// RequestDecisions counts terminal request decisions.
	RequestDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "request_decisions_total",
		Help: "Terminal leave/overtime decisions by kind and outcome.",
	}, []string{"kind", "outcome"})

	// AbsenceSweepMarked counts records inserted by the absence sweep.
	AbsenceSweepMarked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "absence_sweep_marked_total",
		Help: "Attendance records inserted by the absence sweep, by status.",
	}, []string{"status"})
)
