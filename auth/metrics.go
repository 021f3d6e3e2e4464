package auth

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts signup and signin outcomes. A nil *Metrics records nothing.
type Metrics struct {
	Signups *prometheus.CounterVec
	Signins *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Signups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_signups_total",
				Help: "Total number of signup requests by result",
			},
			[]string{"result"},
		),
		Signins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_signins_total",
				Help: "Total number of signin requests by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.Signups, m.Signins)
	return m
}

func (m *Metrics) observeSignup(err error) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) observeSignin(err error) {
	if m == nil {
		return
	}
	m.Signins.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isValidationError(err):
		return "invalid"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "conflict"
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, ErrIncorrectPassword), errors.Is(err, ErrVerification):
		return "rejected"
	default:
		return "error"
	}
}
