package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CredentialsIssuedTotal *prometheus.CounterVec
	WalletIssueErrorsTotal prometheus.Counter
	WalletDurationSeconds  prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		CredentialsIssuedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pulse_credentials_issued_total",
			Help: "Total credentials issued by type and anchoring mode",
		}, []string{"type", "mode"}),
		WalletIssueErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pulse_credential_wallet_errors_total",
			Help: "Total wallet service failures that fell back to local issuance",
		}),
		WalletDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulse_credential_wallet_duration_seconds",
			Help:    "Duration of wallet service issuance calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementIssued(credType, mode string) {
	m.CredentialsIssuedTotal.WithLabelValues(credType, mode).Inc()
}

func (m *Metrics) IncrementWalletErrors() {
	m.WalletIssueErrorsTotal.Inc()
}

func (m *Metrics) ObserveWalletDuration(seconds float64) {
	m.WalletDurationSeconds.Observe(seconds)
}
