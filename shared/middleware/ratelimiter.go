package middleware

import (
	"net/http"

	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/adivinatobi/adivinatobi/shared/metrics"
	"github.com/adivinatobi/adivinatobi/shared/middleware/ratelimiter"
	"github.com/adivinatobi/adivinatobi/shared/utils"
)

// RateLimit refuses requests with 429 once the identity returned by
// getIdentity runs out of tokens.
func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				metrics.RejectedOperations.WithLabelValues("http", "rate_limited").Inc()
				logger.Log.Debug("rate limit exceeded", "identity", identity, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{
					Message:    "rate limit exceeded, try again later",
					StatusCode: http.StatusTooManyRequests,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MutationsOnly applies mw to requests that change state and lets reads through.
func MutationsOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				limited.ServeHTTP(w, r)
			}
		})
	}
}

// GetIP identifies a client by the address of its connection.
func GetIP(r *http.Request) (string, error) {
	return utils.RemoteIP(r)
}

// GetProxiedIP identifies a client by the X-Real-IP or X-Forwarded-For header
// a trusted reverse proxy sets. Clients can forge these when they reach the
// server directly.
func GetProxiedIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}
