package assistant

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/flathive/flathive/internal/health"
)

// ProviderHealthChecker monitors the completion provider. Providers without
// a HealthPing (static, Gemini's hosted API) count as always reachable.
type ProviderHealthChecker struct {
	completer    Completer
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewProviderHealthChecker(c Completer, log zerolog.Logger, probeTimeout time.Duration) *ProviderHealthChecker {
	hc := &ProviderHealthChecker{completer: c, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0) // start unhealthy until first successful probe
	return hc
}

func (hc *ProviderHealthChecker) Name() string { return "assistant" }

// IsHealthy returns the cached health status (non-blocking).
func (hc *ProviderHealthChecker) IsHealthy() bool {
	return hc.healthy.Load() == 1
}

// Start begins periodic health checking.
func (hc *ProviderHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		if hc.probe(checkCtx) {
			hc.healthy.Store(1)
		} else {
			hc.healthy.Store(0)
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func (hc *ProviderHealthChecker) probe(ctx context.Context) bool {
	p, ok := hc.completer.(health.HealthPinger)
	if !ok {
		return true
	}
	if err := p.HealthPing(ctx); err != nil {
		hc.log.Warn().Err(err).Msg("assistant provider health probe failed")
		return false
	}
	return true
}
