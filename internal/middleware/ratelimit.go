package middleware

import (
    "encoding/json"
    "net/http"
    "time"

    "github.com/ulule/limiter/v3"
    "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
    "github.com/ulule/limiter/v3/drivers/store/memory"
)

// Per-endpoint rates for the public write paths. The store is in-memory and
// per-process: counters do not survive a restart.
var (
    CommentRate      = limiter.Rate{Period: 5 * time.Minute, Limit: 10}
    LikeRate         = limiter.Rate{Period: time.Minute, Limit: 30}
    SubscriptionRate = limiter.Rate{Period: time.Minute, Limit: 5}
)

// RateLimit builds a chi-compatible middleware limiting requests per client
// IP at the given rate. Each call gets its own counter store so endpoints
// are limited independently.
func RateLimit(rate limiter.Rate) func(http.Handler) http.Handler {
    instance := limiter.New(memory.NewStore(), rate, limiter.WithTrustForwardHeader(true))
    mw := stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(limitReached))
    return mw.Handler
}

func limitReached(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusTooManyRequests)
    json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests"})
}
