package middlewares

import (
	"net/http"

	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware rejects requests beyond the limiter's budget with 429.
func RateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Log.Warnw("rate limit exceeded", "method", r.Method, "uri", r.RequestURI)
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
