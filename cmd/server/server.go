package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pokedex-api/internal/clients/funtranslations"
	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/config"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/health"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/species"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/logging"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP gateway",
	RunE:  runServer,
}

var (
	configPath string
	httpPort   int
)

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML settings file")
	serverCmd.Flags().IntVar(&httpPort, "port", 0, "HTTP port (overrides settings)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = httpPort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // nolint:errcheck // stdout sync fails on some terminals
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.New()
	handler, err := buildHandler(cfg, logger, recorder)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var healthServer *health.Server
	var healthLis net.Listener
	if cfg.Server.GRPCHealthPort != 0 {
		healthServer, err = health.New(&health.Config{Logger: logger})
		if err != nil {
			return err
		}
		healthLis, err = net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(cfg.Server.GRPCHealthPort)))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP gateway starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	if healthServer != nil {
		g.Go(func() error {
			return healthServer.Serve(healthLis)
		})
		healthServer.SetServing(true)
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down gateway...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if healthServer != nil {
			healthServer.Shutdown(shutdownCtx)
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown timeout exceeded, forcing close", zap.Error(err))
			return httpServer.Close()
		}
		logger.Info("Gateway stopped gracefully")
		return nil
	})

	return g.Wait()
}

// buildHandler wires clients, orchestrator and routes. Both clients share one
// connection pool; each keeps its own timeout.
func buildHandler(cfg *config.Config, logger *zap.Logger, recorder *metrics.Recorder) (http.Handler, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	speciesClient, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     cfg.PokeAPI.BaseURL,
		HTTPTimeout: cfg.PokeAPI.Timeout,
		Transport:   recorder.InstrumentTransport("pokeapi", transport),
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	toneClient, err := funtranslations.New(&funtranslations.Config{
		BaseURL:     cfg.TranslationAPI.BaseURL,
		HTTPTimeout: cfg.TranslationAPI.Timeout,
		Transport:   recorder.InstrumentTransport("funtranslations", transport),
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	speciesService, err := species.NewOrchestrator(&species.Config{
		SpeciesClient: speciesClient,
		ToneClient:    toneClient,
		Logger:        logger,
		Metrics:       recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create species orchestrator: %w", err)
	}

	speciesHandler, err := v1alpha1.NewSpeciesHandler(&v1alpha1.SpeciesHandlerConfig{
		SpeciesService: speciesService,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create species handler: %w", err)
	}

	return v1alpha1.NewRouter(&v1alpha1.RouterConfig{
		SpeciesHandler: speciesHandler,
		Metrics:        recorder,
		Middleware:     &v1alpha1.MiddlewareConfig{Logger: logger},
	})
}
