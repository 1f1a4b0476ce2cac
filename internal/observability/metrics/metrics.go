package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	LinksIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unique_links_issued_total",
			Help: "Total number of unique links minted by admins.",
		},
		[]string{"service", "kind", "result"},
	)

	LinkValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unique_link_validations_total",
			Help: "Total number of link validations by outcome.",
		},
		[]string{"service", "result"},
	)

	GuardedActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guarded_actions_total",
			Help: "Total number of token-gated write attempts.",
		},
		[]string{"service", "action", "result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"service", "actor", "result"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)
	LinksIssuedTotal = LinksIssuedTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	LinkValidationsTotal = LinkValidationsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	GuardedActionsTotal = GuardedActionsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	LoginsTotal = LoginsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		LinksIssuedTotal,
		LinkValidationsTotal,
		GuardedActionsTotal,
		LoginsTotal,
	)
}
