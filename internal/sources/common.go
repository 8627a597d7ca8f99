package sources

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

func newHTTPClient(cfg domain.SourceConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func newLimiter(cfg domain.SourceConfig) *rate.Limiter {
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 10
	}
	return rate.NewLimiter(rate.Limit(rps), rps)
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
