// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "khata_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	DocumentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_documents_created_total",
		Help: "Invoices and vendor bills created, by kind.",
	}, []string{"kind"})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_payments_recorded_total",
		Help: "Payments recorded, by direction.",
	}, []string{"direction"})

	BankRowsImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_bank_rows_imported_total",
		Help: "Bank statement rows processed, by result (imported or skipped).",
	}, []string{"result"})

	StatusRewrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "khata_status_rewrites_total",
		Help: "Document statuses rewritten after re-derivation.",
	})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_rate_limited_total",
		Help: "Requests rejected by the rate limiter, by scope.",
	}, []string{"scope"})
)
