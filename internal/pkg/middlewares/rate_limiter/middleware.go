package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"waste-service/internal/pkg/middlewares/auth"
	"waste-service/pkg/logger"
)

// Middleware limits each caller separately: authenticated requests by user
// id, anonymous ones by client IP. Limiter failures let the request through.
func Middleware(log handlerLogger, limit int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, caller := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("key", key),
				).Error("rate limiter unavailable")
				RateLimiterFailOpenTotal.Inc()
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				handlerPath := r.URL.Path
				if route := mux.CurrentRoute(r); route != nil {
					if template, err := route.GetPathTemplate(); err == nil {
						handlerPath = template
					}
				}

				log.With(
					logger.NewField("method", r.Method),
					logger.NewField("route", handlerPath),
					logger.NewField("key", key),
				).Warn("rate limit exceeded")

				RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath, caller).Inc()

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)

				_, err := w.Write([]byte(`{"success":false,"message":"rate limit exceeded, try again later"}`))
				if err != nil {
					log.With(
						logger.NewField("error", err),
						logger.NewField("path", r.URL.Path),
					).Error("failed to write rate limit response")
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) (key, caller string) {
	if actor, ok := auth.ActorFromContext(r.Context()); ok {
		return "user:" + actor.ID, "user"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host, "anonymous"
}
