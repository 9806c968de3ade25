package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Journal metrics
	EntriesRecorded prometheus.Counter
	EntriesRejected *prometheus.CounterVec
	EntryLegs       prometheus.Histogram
	EntryAmount     prometheus.Histogram

	// Ledger metrics
	PostingsWritten prometheus.Counter
	BalanceQueries  prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter

	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerbook_entries_recorded_total",
			Help: "Total number of journal entries recorded",
		}),
		EntriesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerbook_entries_rejected_total",
				Help: "Total number of journal entries rejected by validation",
			},
			[]string{"reason"},
		),
		EntryLegs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerbook_entry_legs",
			Help:    "Number of legs per recorded journal entry",
			Buckets: []float64{2, 3, 4, 6, 8, 16, 32},
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerbook_entry_amount",
			Help:    "Debit total per recorded journal entry",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		PostingsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerbook_postings_written_total",
			Help: "Total number of ledger postings written",
		}),
		BalanceQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerbook_balance_queries_total",
			Help: "Total number of balance queries served",
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgerbook_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		ReportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerbook_reports_generated_total",
				Help: "Total number of reports generated by kind",
			},
			[]string{"report"},
		),
		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgerbook_report_duration_seconds",
				Help:    "Report generation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
	}
}
