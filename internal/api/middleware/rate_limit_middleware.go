package middleware

import (
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/ratelimit"
)

// RateLimitMiddleware 以 scope + client IP 為 key, 需放在 RealIP 之後
func RateLimitMiddleware(limiter ratelimit.Limiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), scope+":"+clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				response.FailJSON(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
