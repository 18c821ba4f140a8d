package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeNoData      = "no_data"
	OutcomeRateLimited = "rate_limited"
	OutcomeUnavailable = "unavailable"
)

// Search outcomes.
const (
	SearchOK           = "ok"
	SearchUpstreamErr  = "upstream_error"
	SearchInconsistent = "inconsistent_data"
)

type Collector struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec // endpoint: routes|schedules, outcome
	Searches         *prometheus.CounterVec // outcome
	JourneysReturned prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flights_upstream_requests_total",
			Help: "Upstream API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flights_searches_total",
			Help: "Interconnection searches by outcome.",
		}, []string{"outcome"}),
		JourneysReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "flights_journeys_returned",
			Help:    "Journeys returned per successful search.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	reg.MustRegister(c.UpstreamRequests, c.Searches, c.JourneysReturned)

	return c
}

// ObserveUpstream is safe on a nil Collector so callers need no wiring in tests.
func (c *Collector) ObserveUpstream(endpoint, outcome string) {
	if c == nil {
		return
	}

	c.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (c *Collector) ObserveSearch(outcome string, journeys int) {
	if c == nil {
		return
	}

	c.Searches.WithLabelValues(outcome).Inc()
	if outcome == SearchOK {
		c.JourneysReturned.Observe(float64(journeys))
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
