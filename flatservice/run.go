// Package flatservice is the composition root: it assembles the store, the
// realtime broker, the assistant, auth, and the HTTP server, and runs them
// until shutdown.
package flatservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/flathive/flathive/internal/api"
	"github.com/flathive/flathive/internal/assistant"
	"github.com/flathive/flathive/internal/auth"
	"github.com/flathive/flathive/internal/config"
	"github.com/flathive/flathive/internal/events"
	"github.com/flathive/flathive/internal/factory"
	"github.com/flathive/flathive/internal/health"
	"github.com/flathive/flathive/internal/live"
	"github.com/flathive/flathive/internal/logger"
	"github.com/flathive/flathive/internal/store"
)

const probeTimeout = 2 * time.Second

// Run starts the flathive HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("flathive")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("store_driver", cfg.StoreDriver).
		Str("assistant_provider", cfg.AssistantProvider).
		Int("http_port", cfg.HTTPPort).
		Msg("Flathive starting")

	// Root context bound to SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	st, completer, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	broker := live.NewBroker()
	bus := events.NewBus()
	watchErrorLogging(bus, log)

	svcHealth := startHealthCheckers(ctx, cfg, log, st, completer)

	// Block startup until dependencies report healthy; fail fast otherwise.
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	router := api.NewRouter(api.Deps{
		Store:         st,
		Broker:        broker,
		Bus:           bus,
		Assistant:     assistant.New(completer),
		Authenticator: auth.NewPasswordAuthenticator(st.Flatmates()),
		JWT:           auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.SessionHours)*time.Hour),
		IsHealthy:     svcHealth.IsHealthy,
		Log:           log,
	})

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs the store and the assistant provider,
// failing fast when either is misconfigured.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, assistant.Completer, error) {
	st, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store unavailable")
		return nil, nil, err
	}

	completer, err := factory.NewCompleter(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Assistant provider unavailable")
		return nil, nil, err
	}
	return st, completer, nil
}

// watchErrorLogging surfaces dead realtime subscriptions in the service log.
// The SSE handlers already report the failure to their own client; this is
// the operator-facing trail.
func watchErrorLogging(bus *events.Bus, log zerolog.Logger) {
	bus.Subscribe(events.TopicPermissionError, func(payload interface{}) {
		pe, ok := payload.(*live.PermissionError)
		if !ok {
			log.Warn().Interface("payload", payload).Msg("unexpected permission-error payload")
			return
		}
		log.Warn().
			Str("path", pe.Path).
			Str("op", pe.Op).
			Err(pe.Err).
			Msg("realtime subscription stopped")
	})
}

// startHealthCheckers starts the store and assistant checkers and the
// service-level aggregator feeding /api/health.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store, completer assistant.Completer) *health.ServiceHealthChecker {
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	providerChecker := assistant.NewProviderHealthChecker(completer, log, probeTimeout)
	go providerChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker, providerChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

// startupHealthTimeout is interval*2 with a floor of 60 seconds, giving
// every checker at least one full probe cycle.
func startupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := startupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: SSE watch streams stay open indefinitely.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
