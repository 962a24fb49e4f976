package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"sla-dashboard/internal/config"
	"sla-dashboard/internal/dashboard"
	"sla-dashboard/internal/db"
	httphandler "sla-dashboard/internal/http"
	"sla-dashboard/internal/logger"
	"sla-dashboard/internal/metrics"
	"sla-dashboard/internal/repository"
	"sla-dashboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to open database")
	}

	// The store may be down at startup; requests report it until it is back.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	missing, err := db.MissingColumns(ctx, database, db.SLATable)
	cancel()
	switch {
	case err != nil:
		appLogger.Warn().Err(err).Msg("could not inspect sla table")
	case len(missing) > 0:
		appLogger.Warn().Strs("columns", missing).Str("table", db.SLATable).Msg("sla table is missing columns")
	}

	collector := metrics.New()
	slaRepo := repository.NewSLARepository(database, collector)
	slaService := service.NewSLAService(slaRepo, cfg.Analytics.TrendDays, cfg.Analytics.MaxRangeDays)

	templates, err := dashboard.Templates()
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to parse dashboard templates")
	}

	handler := httphandler.NewHandler(slaService, collector, appLogger)
	router := httphandler.NewRouter(handler, templates, appLogger, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Str("driver", cfg.DB.Driver).Msg("starting sla dashboard")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
