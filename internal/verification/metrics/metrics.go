package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	VerificationsTotal      *prometheus.CounterVec
	ProviderDurationSeconds *prometheus.HistogramVec
	ProfileCacheHitsTotal   *prometheus.CounterVec
	RateLimitDenialsTotal   prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_verifications_total",
			Help: "Total number of verification attempts by platform and outcome",
		}, []string{"platform", "outcome"}),
		ProviderDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pulse_verification_provider_duration_seconds",
			Help:    "Duration of upstream provider lookups in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"platform"}),
		ProfileCacheHitsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_verification_profile_cache_total",
			Help: "Profile cache lookups by result",
		}, []string{"result"}),
		RateLimitDenialsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pulse_verification_ratelimit_denials_total",
			Help: "Total number of verification requests denied by the daily attempt limit",
		}),
	}
}

func (m *Metrics) IncrementVerifications(platform, outcome string) {
	m.VerificationsTotal.WithLabelValues(platform, outcome).Inc()
}

func (m *Metrics) ObserveProviderDuration(platform string, seconds float64) {
	m.ProviderDurationSeconds.WithLabelValues(platform).Observe(seconds)
}

func (m *Metrics) IncrementCacheHit()  { m.ProfileCacheHitsTotal.WithLabelValues("hit").Inc() }
func (m *Metrics) IncrementCacheMiss() { m.ProfileCacheHitsTotal.WithLabelValues("miss").Inc() }

func (m *Metrics) IncrementRateLimitDenials() {
	m.RateLimitDenialsTotal.Inc()
}
