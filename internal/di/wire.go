//go:build wireinject
// +build wireinject

package di

import (
	"StockPilot/pkg/config"
	"StockPilot/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideSQLiteStore,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideBytesCache,

		// Upstream providers
		ProvideYahooClient,
		ProvidePriceProvider,
		ProvideProfileProvider,
		ProvideNewsProvider,
		ProvideTranslator,
		ProvideMacroFeed,

		// Repositories
		ProvideAdviceStore,
		ProvideAdvicePublisher,

		// Data access
		ProvideFetcher,
		ProvideMarketData,

		// Use cases
		ProvideConsultant,
		ProvideAdvisor,
		ProvideScanner,
		ProvideBattleSimulator,
		ProvideCalendar,
		ProvideTimeMachine,
		ProvideChatGuide,
		ProvidePortfolioAnalyzer,
		ProvideRegimeClassifier,
		ProvideSeasonalityAnalyzer,
		ProvideVolatilityInferer,

		// HTTP and WebSocket handlers
		ProvideMarketHandler,
		ProvideStockHandler,
		ProvideConsultHandler,
		ProvidePortfolioHandler,
		ProvideFeaturesHandler,
		ProvideMarketStream,

		// Background jobs
		ProvideScheduler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
