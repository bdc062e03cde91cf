package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	OAuth2ExchangeTotal        = "oauth2_exchange_total"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		OAuth2ExchangeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: OAuth2ExchangeTotal,
			Help: "Count of all authorization code exchanges",
		}, []string{"tool", "result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}

	PromSummaries = map[string]*prometheus.SummaryVec{}
)

// PromCollectors returns every collector declared above.
func PromCollectors() []prometheus.Collector {
	var result []prometheus.Collector
	for _, c := range PromGauges {
		result = append(result, c)
	}

	for _, c := range PromCounters {
		result = append(result, c)
	}

	for _, c := range PromHistograms {
		result = append(result, c)
	}

	for _, c := range PromSummaries {
		result = append(result, c)
	}

	return result
}
