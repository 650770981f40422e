package di

import (
	"StockDash/internal/domain/repository"
	"StockDash/internal/loader"
	"StockDash/internal/service/cache"
	"StockDash/internal/usecase"
	"StockDash/pkg/config"
	"StockDash/pkg/metrics"
	"StockDash/pkg/server"
)

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideTableCache creates the in-process cache backing the memoized load.
func ProvideTableCache() *cache.TTLCache {
	return cache.NewTTLCache()
}

// ProvideTableSource creates the memoized CSV table store.
func ProvideTableSource(cfg *config.Config, c *cache.TTLCache, m repository.Metrics) repository.TableSource {
	return loader.NewStore(cfg.Data.File, cfg.Data.CacheTTL, c, m)
}

// ProvideDashboard creates the dashboard query use case.
func ProvideDashboard(source repository.TableSource, m repository.Metrics) *usecase.Dashboard {
	return usecase.NewDashboard(source, m)
}

// ProvideApp assembles the application server.
func ProvideApp(cfg *config.Config, source repository.TableSource, dash *usecase.Dashboard) *server.App {
	return server.New(cfg, source, dash)
}
