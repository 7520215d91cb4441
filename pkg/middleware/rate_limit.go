package middleware

import (
	"net/http"
	"time"

	apperrors "contour/pkg/errors"
	httputil "contour/pkg/http"
	"contour/pkg/logger"
	"contour/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// KeyExtractor picks the identity a request is rate limited under.
type KeyExtractor func(r *http.Request) string

// IPRateLimiter keeps one token bucket per client. Idle buckets expire from the
// cache so the map cannot grow without bound.
type IPRateLimiter struct {
	limiters  *cache.Cache
	limit     rate.Limit
	burst     int
	extractor KeyExtractor
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewIPRateLimiter keys buckets by proxies.ClientIP, so forwarding headers only
// count when the peer is a trusted proxy.
func NewIPRateLimiter(rps float64, burst int, idleTTL time.Duration, proxies httputil.TrustedProxies, log *logger.Logger, m *metrics.Metrics) *IPRateLimiter {
	return &IPRateLimiter{
		limiters:  cache.New(idleTTL, 2*idleTTL),
		limit:     rate.Limit(rps),
		burst:     burst,
		extractor: proxies.ClientIP,
		log:       log,
		metrics:   m,
	}
}

func (rl *IPRateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := rl.limiters.Get(key); ok {
		rl.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	// Another request may have raced us here; Add keeps whichever arrived first.
	if err := rl.limiters.Add(key, limiter, cache.DefaultExpiration); err != nil {
		if v, ok := rl.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (rl *IPRateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}
	return rl.limiterFor(key).Allow()
}

func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiter.extractor(r)

			if !limiter.Allow(key) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"client_ip", key,
					"path", r.URL.Path,
				)
				if limiter.metrics != nil {
					limiter.metrics.RateLimited.Inc()
				}
				w.Header().Set("Retry-After", "1")
				_ = httputil.WriteError(w, apperrors.TooManyRequests("Rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
