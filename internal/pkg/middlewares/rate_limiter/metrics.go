package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// caller is "user" for authenticated requests and "anonymous" for IP keyed ones.
	RateLimitExceededTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_exceeded_total",
			Help: "Requests rejected with 429 by the rate limiter",
		},
		[]string{"method", "route", "caller"},
	)

	RateLimiterFailOpenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limiter_fail_open_total",
			Help: "Requests let through because the limiter backend returned an error",
		},
	)
)
