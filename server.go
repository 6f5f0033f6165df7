package hapticvision

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Desarso/hapticvision/sessions"
	"github.com/Desarso/hapticvision/stores"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Re-export session types so callers only need the root package
type HTTPSession = sessions.HTTPSession
type WebSocketSession = sessions.WebSocketSession
type GatewayInterface = sessions.GatewayInterface

const shutdownTimeout = 30 * time.Second

// NewRouter returns the gin engine serving the chatbot endpoints. When traces
// can be pinged, /health reports its reachability.
func NewRouter(gateway GatewayInterface, traces stores.TraceStore, logger zerolog.Logger) *gin.Engine {
	health, _ := traces.(stores.Pinger)
	return sessions.NewRouter(gateway, health, logger)
}

// App owns every long-lived object of the process.
type App struct {
	Config    *Config
	Logger    zerolog.Logger
	Gateway   *Gateway
	Traces    stores.TraceStore
	Retention *stores.Retention
	Server    *http.Server
}

// NewApp builds the gateway, trace store and HTTP server from cfg. Nothing
// is listening yet.
func NewApp(ctx context.Context, cfg *Config, logger zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	traces, err := stores.NewStore(cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open trace store: %w", err)
	}

	var retention *stores.Retention
	if cfg.TracingEnabled() {
		retention, err = stores.NewRetention(traces, cfg.TraceRetentionCron, cfg.TraceRetention,
			logger.With().Str("component", "retention").Logger())
		if err != nil {
			traces.Close()
			return nil, err
		}
	}

	gateway, err := NewGateway(ctx, cfg, traces, logger)
	if err != nil {
		traces.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Gateway:   gateway,
		Traces:    traces,
		Retention: retention,
		Server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(gateway, traces, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.Traces.Close()
	if a.Retention != nil {
		a.Retention.Start()
		defer a.Retention.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.Server.Addr).Msg("starting HapticVision Cloud")
		errCh <- a.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
