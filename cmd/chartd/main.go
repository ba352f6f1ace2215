package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"PriceChart/internal/api"
	"PriceChart/internal/chart"
	"PriceChart/internal/collector"
	"PriceChart/internal/config"
	"PriceChart/internal/recorder"
	"PriceChart/internal/scheduler"
	"PriceChart/internal/series"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// keep only the last directory in caller paths
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		parts := strings.Split(file, "/")
		if len(parts) > 1 {
			file = strings.Join(parts[len(parts)-2:], "/")
		}
		return file + ":" + strconv.Itoa(line)
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.With().Str("@tag", "chartd").Caller().Logger()
}

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("chartd starting")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using memory")
			rec = recorder.NewMemoryRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewMemoryRecorder()
	}
	defer rec.Close()

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "static":
		sf, err := collector.LoadStaticFile(cfg.DataSource.StaticFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load static data")
		}
		fetcher = sf
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Strs("symbols", cfg.DataSource.Symbols).Msg("data source ready")
	col := collector.NewCollector(fetcher, rec, cfg.DataSource.Range)

	// Chart service; Validate already checked these parse
	window, _ := series.ParseWindow(cfg.Chart.DefaultWindow)
	policy, _ := series.ParseDuplicatePolicy(cfg.Chart.DuplicatePolicy)
	charts := chart.NewService(rec, chart.Options{
		Window:        window,
		TickCount:     cfg.Chart.TickCount,
		PriceInterval: cfg.Chart.PriceInterval,
		Duplicates:    policy,
	})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, cfg.DataSource.Symbols)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RunOnStart {
		log.Info().Msg("run_on_start enabled, refreshing now")
		go sched.RunNow()
	}

	srv := api.NewServer(charts, rec, col, cfg.HTTP.Port, cfg.HTTP.CORSOrigin)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	log.Info().Msg("chartd stopped")
}
