package triage

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the triage subsystem.
type Metrics struct {
	TriagesTotal       *prometheus.CounterVec
	RejectionsTotal    *prometheus.CounterVec
	ClassifyDuration   prometheus.Histogram
	TicketLength       prometheus.Histogram
	NotificationsTotal *prometheus.CounterVec
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TriagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triagedesk_triages_total",
			Help: "Total classified tickets by category and urgency.",
		}, []string{"category", "urgency"}),
		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triagedesk_rejections_total",
			Help: "Total tickets rejected by validation, by reason.",
		}, []string{"reason"}),
		ClassifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "triagedesk_classify_duration_seconds",
			Help:    "Duration of ticket classification in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10us .. ~164ms
		}),
		TicketLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "triagedesk_ticket_length_bytes",
			Help:    "Size of classified ticket text in bytes.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 7), // 16B .. 64KB
		}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triagedesk_notifications_total",
			Help: "Total triage notifications sent, by status.",
		}, []string{"status"}),
	}

	// pre-create label combinations so dashboards see zeros before the first ticket
	for _, c := range Categories {
		for _, u := range Urgencies {
			m.TriagesTotal.WithLabelValues(string(c), string(u))
		}
	}

	reg.MustRegister(
		m.TriagesTotal,
		m.RejectionsTotal,
		m.ClassifyDuration,
		m.TicketLength,
		m.NotificationsTotal,
	)

	return m
}

// Hooks returns Hooks that update the corresponding metrics.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnClassified: func(r *Result, textBytes int, duration float64) {
			m.TriagesTotal.WithLabelValues(string(r.Category), string(r.Urgency)).Inc()
			m.ClassifyDuration.Observe(duration)
			m.TicketLength.Observe(float64(textBytes))
		},
		OnRejected: func(reason string) {
			m.RejectionsTotal.WithLabelValues(reason).Inc()
		},
		OnNotify: func(err error) {
			status := "success"
			if err != nil {
				status = "error"
			}
			m.NotificationsTotal.WithLabelValues(status).Inc()
		},
	}
}
