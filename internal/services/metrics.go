// Package services – operation metrics.
//
// Prometheus counters for registry operations, labeled by operation name and
// outcome. Outcomes are the error kinds from errors.go plus "ok" and
// "internal", keeping label cardinality bounded.
package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// opsTotal counts facade operations by name and outcome.
var opsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "registry_operations_total",
		Help: "Total registry facade operations by outcome.",
	},
	[]string{"op", "outcome"},
)

func init() {
	prometheus.MustRegister(opsTotal)
}

// observe records the outcome of one facade operation.
func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		var re *RegistryError
		if errors.As(err, &re) {
			outcome = string(re.Kind)
		} else {
			outcome = "internal"
		}
	}
	opsTotal.WithLabelValues(op, outcome).Inc()
}
