package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// salesCreatedTotal counts successfully committed sales, labeled by
// payment method.
var salesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pos_sales_created_total",
		Help: "Number of committed sales.",
	},
	[]string{"payment_method"},
)
