package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/wxcharts/internal/charts"
	"github.com/chrissnell/wxcharts/internal/controllers/restserver"
	"github.com/chrissnell/wxcharts/internal/dataset"
	"github.com/chrissnell/wxcharts/internal/log"
	"github.com/chrissnell/wxcharts/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// NewWeatherSource builds the weather source selected in cfg.
func NewWeatherSource(cfg config.WeatherData) (dataset.WeatherSource, error) {
	switch cfg.Source {
	case config.SourceCSV:
		return dataset.NewCSVSource(cfg.Path, cfg.DateLayout), nil
	case config.SourceSQLite:
		return dataset.NewSQLiteSource(cfg.Path, cfg.DateLayout)
	case config.SourceTimescaleDB:
		return dataset.NewTimescaleSource(cfg.ConnectionString, cfg.Station, cfg.Start, cfg.End)
	default:
		return nil, fmt.Errorf("unsupported weather source: %s", cfg.Source)
	}
}

// NewService wires the chart service from cfg.
func NewService(cfg *config.ConfigData) (*charts.Service, error) {
	weather, err := NewWeatherSource(cfg.Weather)
	if err != nil {
		return nil, err
	}
	return newService(cfg, weather), nil
}

func newService(cfg *config.ConfigData, weather dataset.WeatherSource) *charts.Service {
	sample := charts.SampleRange{
		From: cfg.Regression.SampleFrom,
		To:   cfg.Regression.SampleTo,
		Step: cfg.Regression.SampleStep,
	}
	return charts.NewService(dataset.NewCSVAnscombeSource(cfg.Anscombe.Path), weather, sample)
}

// closeSource releases sources that hold a database handle.
func closeSource(src dataset.WeatherSource) {
	closer, ok := src.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Errorf("error closing weather source: %v", err)
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	weather, err := NewWeatherSource(a.cfg.Weather)
	if err != nil {
		return err
	}
	defer closeSource(weather)

	service := newService(a.cfg, weather)
	log.Infow("weather source ready", "source", a.cfg.Weather.Source)

	rest := restserver.NewController(ctx, &wg, a.cfg.Server, service, a.logger)
	if err := rest.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
