package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/signalsfoundry/coverage-mapper/core"
	"github.com/signalsfoundry/coverage-mapper/internal/antenna"
	"github.com/signalsfoundry/coverage-mapper/internal/api"
	"github.com/signalsfoundry/coverage-mapper/internal/logging"
	"github.com/signalsfoundry/coverage-mapper/internal/materials"
	"github.com/signalsfoundry/coverage-mapper/internal/observability"
)

func main() {
	addr := flag.String("addr", envOr("COVERAGE_ADDR", ":8080"), "HTTP address the coverage API listens on")
	patternPath := flag.String("patterns", envOr("COVERAGE_PATTERNS", ""), "Path to an antenna pattern library JSON (empty: isotropic patterns)")
	materialPath := flag.String("materials", envOr("COVERAGE_MATERIALS", ""), "Path to a material override JSON (empty: built-in table)")
	workers := flag.Int("workers", 0, "Concurrent heatmap row workers (0: GOMAXPROCS)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	engine := buildEngine(log, *patternPath, *materialPath)
	engine.Workers = *workers
	engine.Log = log
	engine.Recorder = collector

	srv := &http.Server{
		Addr:    *addr,
		Handler: api.NewServer(engine, log, collector).Router(),
	}

	log.Info(ctx, "starting coverage API server", logging.String("addr", *addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server exited", logging.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down coverage API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "HTTP shutdown incomplete", logging.String("error", err.Error()))
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

// buildEngine assembles the providers from the configured files and
// logs a startup diagnostic of what was actually loaded, so a
// misconfigured deployment is visible without probing the API.
func buildEngine(log logging.Logger, patternPath, materialPath string) *core.Engine {
	ctx := context.Background()

	var patterns core.AntennaPatternProvider
	if patternPath != "" {
		lib, err := antenna.LoadLibrary(patternPath)
		if err != nil {
			log.Error(ctx, "failed to load antenna patterns", logging.String("path", patternPath), logging.String("error", err.Error()))
			os.Exit(1)
		}
		patterns = lib
		log.Info(ctx, "antenna pattern library loaded",
			logging.String("path", patternPath),
			logging.Int("models", len(lib.Models())),
			logging.String("model_ids", strings.Join(lib.Models(), ",")),
		)
	} else {
		log.Warn(ctx, "no antenna pattern library configured, using isotropic patterns")
	}

	table := materials.NewDefaultTable()
	if materialPath != "" {
		loaded, err := materials.Load(materialPath)
		if err != nil {
			log.Error(ctx, "failed to load material overrides", logging.String("path", materialPath), logging.String("error", err.Error()))
			os.Exit(1)
		}
		table = loaded
		log.Info(ctx, "material overrides loaded", logging.String("path", materialPath))
	}

	engine := core.NewEngine(patterns, table, antenna.DefaultMountRules())
	log.Info(ctx, "engine configured",
		logging.Float64("path_loss_exponent", engine.PathLossExponent),
		logging.Float64("floor_height_m", engine.FloorHeightMeters),
	)
	return engine
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
