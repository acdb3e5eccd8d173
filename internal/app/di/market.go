// Package di wires the broker's components from configuration.
package di

import (
	"time"

	"mandacaru_broker/internal/platform/externalapi/twelvedata"
	infrahttp "mandacaru_broker/internal/platform/http"
	"mandacaru_broker/internal/shared/ratelimiter"
)

// NewMarket creates a Twelve Data quote client with its own HTTP client.
func NewMarket(cfg twelvedata.Config) *twelvedata.QuoteClient {
	return twelvedata.NewQuoteClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewMarketLimiter throttles quote calls to perMinute requests.
func NewMarketLimiter(perMinute int) *ratelimiter.RateLimiter {
	return ratelimiter.NewRateLimiter(perMinute, time.Minute)
}
