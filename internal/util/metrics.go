package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_api_requests_total",
		Help: "Total number of requests issued to the remote API",
	}, []string{"method", "path", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_api_request_duration_seconds",
		Help:    "Latency of requests to the remote API",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	AuthFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_auth_failures_total",
		Help: "Total number of unauthorized responses that forced a local logout",
	})

	LoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_logins_total",
		Help: "Total number of successful logins",
	})

	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Total number of cart mutations",
	}, []string{"op", "mode"})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Total number of orders placed through checkout",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_cancelled_total",
		Help: "Total number of orders cancelled by the customer",
	})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_failed_total",
		Help: "Total number of failed checkout submissions",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devapi_http_request_duration_seconds",
		Help:    "HTTP request latency of the development API server",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devapi_http_requests_total",
		Help: "Total number of HTTP requests served by the development API server",
	}, []string{"method", "path", "status"})
)
