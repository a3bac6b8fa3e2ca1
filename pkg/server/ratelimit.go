package server

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/tilt-dev/simpleserve/pkg/api"
)

// rateLimit rejects requests with 429 once the token bucket runs dry.
type rateLimit struct {
	limiter *rate.Limiter
	stats   *Stats
	handler http.Handler
}

func newRateLimit(cfg *api.RateLimit, stats *Stats, handler http.Handler) *rateLimit {
	return &rateLimit{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		stats:   stats,
		handler: handler,
	}
}

func (rl *rateLimit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !rl.limiter.Allow() {
		rl.stats.Limited.Add(1)
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return
	}
	rl.handler.ServeHTTP(w, r)
}
