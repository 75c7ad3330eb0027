package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search path labels.
const (
	SearchPathVector  = "vector"
	SearchPathLexical = "lexical"
	SearchPathFailed  = "failed"
)

// SearchRequestsTotal counts searches by kind and the path that produced the
// answer (vector, lexical fallback, or total failure).
var SearchRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "agentdex",
		Name:      "search_requests_total",
		Help:      "Total number of search requests by item kind and result path",
	},
	[]string{"kind", "path"},
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	searchMetricsRegistered = true
}
