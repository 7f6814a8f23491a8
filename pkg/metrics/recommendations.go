package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendations collects counters for the recommendation flow. A nil
// receiver is a no-op so callers may omit metrics entirely.
type Recommendations struct {
	issued      *prometheus.CounterVec
	defaultRate *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewRecommendations registers the collectors on reg.
func NewRecommendations(reg prometheus.Registerer) *Recommendations {
	factory := promauto.With(reg)
	return &Recommendations{
		issued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "policy_advisor",
			Name:      "recommendations_issued_total",
			Help:      "Recommendations stored, by product category and matched rule.",
		}, []string{"category", "rule"}),
		defaultRate: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "policy_advisor",
			Name:      "premium_default_rate_total",
			Help:      "Premiums computed with the fallback base rate.",
		}, []string{"category"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "policy_advisor",
			Name:      "recommendation_failures_total",
			Help:      "Recommendation requests that produced no result, by reason.",
		}, []string{"reason"}),
	}
}

// ObserveIssued counts a stored recommendation.
func (m *Recommendations) ObserveIssued(category, rule string) {
	if m == nil {
		return
	}
	m.issued.WithLabelValues(category, rule).Inc()
}

// ObserveDefaultRate counts a premium priced with the fallback base rate.
func (m *Recommendations) ObserveDefaultRate(category string) {
	if m == nil {
		return
	}
	m.defaultRate.WithLabelValues(category).Inc()
}

// ObserveFailure counts a request that produced no recommendation.
func (m *Recommendations) ObserveFailure(reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(reason).Inc()
}
