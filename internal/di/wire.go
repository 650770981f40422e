//go:build wireinject
// +build wireinject

package di

import (
	"StockDash/pkg/config"
	"StockDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics
		ProvideMetrics,

		// Memoized table load
		ProvideTableCache,
		ProvideTableSource,

		// Use cases
		ProvideDashboard,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
