package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var orderOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "food_orders",
		Subsystem: "orders",
		Name:      "operations_total",
		Help:      "Total number of order lifecycle operations by outcome",
	},
	[]string{"operation", "outcome"},
)

func recordOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	orderOperations.WithLabelValues(operation, outcome).Inc()
}
