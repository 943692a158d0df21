package ratelimit

import (
	"strings"
	"time"
)

// Rule limits requests to paths with the given prefix
type Rule struct {
	Prefix string        // path prefix, e.g. "/api/"
	Limit  int           // requests per window, <= 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Rules           []Rule
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
}

// NewConfig builds a limiter configuration that applies one rule to the API
// routes and leaves the page, static assets and /health unlimited.
func NewConfig(enabled bool, limit int, window time.Duration, burst int, whitelist []string) *Config {
	wl := make(map[string]bool, len(whitelist))
	for _, ip := range whitelist {
		if ip = strings.TrimSpace(ip); ip != "" {
			wl[ip] = true
		}
	}
	return &Config{
		Enabled:         enabled,
		Rules:           []Rule{{Prefix: "/api/", Limit: limit, Window: window, Burst: burst}},
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       wl,
	}
}

// match returns the longest rule whose prefix matches path
func (c *Config) match(path string) *Rule {
	var best *Rule
	for i := range c.Rules {
		r := &c.Rules[i]
		if !strings.HasPrefix(path, r.Prefix) {
			continue
		}
		if best == nil || len(r.Prefix) > len(best.Prefix) {
			best = r
		}
	}
	return best
}
