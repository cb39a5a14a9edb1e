// Package metrics defines Prometheus collectors for the auth service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for authentication outcome counters.
const (
	ResultSuccess            = "success"
	ResultInvalidCredentials = "invalid_credentials"
	ResultLocked             = "locked"
	ResultDuplicate          = "duplicate"
	ResultError              = "error"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	LoginTotal  *prometheus.CounterVec
	SignupTotal *prometheus.CounterVec
}

// New registers and returns the service collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoginTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Login attempts by outcome.",
		}, []string{"result"}),
		SignupTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_signup_total",
			Help: "Signup attempts by outcome.",
		}, []string{"result"}),
	}
}
