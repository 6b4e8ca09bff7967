package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_created_total",
		Help: "Total number of orders successfully placed.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_status_transitions_total",
		Help: "Total number of applied order status transitions, by target status.",
	},
		[]string{"to_status"},
	)

	InvalidTransitionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_invalid_transitions_total",
		Help: "Total number of rejected order status transitions.",
	})

	AvailabilityChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_availability_checks_total",
		Help: "Total number of availability evaluations, by outcome.",
	},
		[]string{"outcome"},
	)

	FloristSearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_florist_searches_total",
		Help: "Total number of florist search requests.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	FloristCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "marketplace_florist_cache_items",
		Help: "Current number of items in the florist cache.",
	})
)
