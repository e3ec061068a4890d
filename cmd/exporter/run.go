package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sbilibin2017/coinwatch/internal/collector"
	"github.com/sbilibin2017/coinwatch/internal/configs"
	httpClient "github.com/sbilibin2017/coinwatch/internal/configs/transport/http"
	"github.com/sbilibin2017/coinwatch/internal/fetcher"
	httpMiddlewares "github.com/sbilibin2017/coinwatch/internal/middlewares/http"
	"github.com/sbilibin2017/coinwatch/internal/registry"
	"github.com/sbilibin2017/coinwatch/internal/runner"
	"github.com/sbilibin2017/coinwatch/internal/scheduler"
)

// run wires the exporter together and blocks until shutdown or a startup
// failure.
func run(ctx context.Context) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := configs.NewExporterConfig(
		configs.WithUpdateInterval(updateInterval),
		configs.WithPort(port),
		configs.WithCoins(coins),
		configs.WithMetricsPath(metricsPath),
		configs.WithAPIBaseURL(apiBaseURL),
	)
	if err != nil {
		return err
	}

	client, err := httpClient.New(
		cfg.APIBaseURL,
		httpClient.WithTimeout(cfg.Timeout()),
		httpClient.WithHeader("Accept", "application/json"),
	)
	if err != nil {
		return err
	}

	seriesRegistry := registry.New()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collector.New(seriesRegistry))

	r := chi.NewRouter()
	r.Use(httpMiddlewares.LoggingMiddleware(logger))
	r.Method(http.MethodGet, cfg.MetricsPath, promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	marketFetcher := fetcher.New(client, cfg.Coins)
	sched := scheduler.New(marketFetcher, seriesRegistry, cfg.Interval(), logger)

	logger.Info("exporter started",
		zap.String("address", cfg.Address()),
		zap.String("path", cfg.MetricsPath),
		zap.Int("interval_seconds", cfg.UpdateInterval),
		zap.Strings("coins", cfg.Coins),
	)

	app := runner.New()
	app.AddWorker(sched)
	app.AddServer(&http.Server{Addr: cfg.Address(), Handler: r})
	return app.Run(ctx)
}
