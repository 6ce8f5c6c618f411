package di

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"StockPilot/internal/domain/repository"
	"StockPilot/internal/domain/service"
	"StockPilot/internal/handler/api"
	"StockPilot/internal/handler/ws"
	internalrepo "StockPilot/internal/repository"
	"StockPilot/internal/scheduler"
	icache "StockPilot/internal/service/cache"
	"StockPilot/internal/service/macro"
	"StockPilot/internal/service/marketdata"
	"StockPilot/internal/service/news"
	"StockPilot/internal/service/translate"
	"StockPilot/internal/service/yahoo"
	"StockPilot/internal/usecase"
	pkgch "StockPilot/pkg/clickhouse"
	"StockPilot/pkg/config"
	xhttp "StockPilot/pkg/http"
	pkgkafka "StockPilot/pkg/kafka"
	applogger "StockPilot/pkg/logger"
	"StockPilot/pkg/metrics"
	"StockPilot/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSQLiteStore opens the local store for the watchlist, portfolio and
// the translated-company cache.
func ProvideSQLiteStore(cfg *config.Config) (*internalrepo.SQLiteStore, error) {
	store, err := internalrepo.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: %w", err)
	}
	return store, nil
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the
// advice archive is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideAdviceStore creates the ClickHouse advice archive, or nil when
// ClickHouse is disabled. Consultations still work without it.
func ProvideAdviceStore(chClient *pkgch.Client, log *applogger.Logger) (repository.AdviceStore, error) {
	if chClient == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := internalrepo.NewCHAdviceStore(ctx, chClient, log)
	if err != nil {
		return nil, fmt.Errorf("advice store: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when streaming is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAdvicePublisher creates a Kafka advice publisher, or nil when the
// producer is disabled.
func ProvideAdvicePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AdvicePublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaAdvicePublisher(producer, cfg.Kafka.Topic)
}

// ProvideBytesCache selects the rendered-response cache backend: Redis when
// configured, in-process TTL cache otherwise.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideYahooClient creates the Yahoo Finance upstream client.
func ProvideYahooClient(cfg *config.Config, log *applogger.Logger) *yahoo.Client {
	return yahoo.NewClient(cfg.Market.RequestTimeout, log)
}

// ProvidePriceProvider exposes the Yahoo client as a price source.
func ProvidePriceProvider(c *yahoo.Client) service.PriceProvider { return c }

// ProvideProfileProvider exposes the Yahoo client as a fundamentals source.
func ProvideProfileProvider(c *yahoo.Client) service.ProfileProvider { return c }

// ProvideNewsProvider creates the Google News RSS client.
func ProvideNewsProvider(cfg *config.Config, log *applogger.Logger) service.NewsProvider {
	return news.NewGoogleNews(news.Config{
		BaseURL:  cfg.Market.News.BaseURL,
		Language: cfg.Market.News.Language,
		Region:   cfg.Market.News.Region,
	}, cfg.Market.RequestTimeout, log)
}

// ProvideTranslator creates the translation client.
func ProvideTranslator(cfg *config.Config, log *applogger.Logger) service.Translator {
	return translate.NewClient(cfg.Market.Translate.BaseURL, cfg.Market.RequestTimeout, log)
}

// ProvideMacroFeed creates the fear & greed feed client.
func ProvideMacroFeed(cfg *config.Config, log *applogger.Logger) service.MacroFeed {
	return macro.NewFearGreedClient(cfg.Market.FearGreed.URL, cfg.Market.RequestTimeout, log)
}

// ProvideFetcher assembles the caching market-data layer over the upstream
// providers.
func ProvideFetcher(
	prices service.PriceProvider,
	profiles service.ProfileProvider,
	newsProvider service.NewsProvider,
	translator service.Translator,
	macroFeed service.MacroFeed,
	sqlStore *internalrepo.SQLiteStore,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *marketdata.Fetcher {
	return marketdata.NewFetcher(
		prices,
		profiles,
		newsProvider,
		translator,
		macroFeed,
		sqlStore,
		m,
		log,
		marketdata.TTLConfig{
			Price:   cfg.Market.CacheTTL.Price,
			Profile: cfg.Market.CacheTTL.Profile,
			News:    cfg.Market.CacheTTL.News,
			Summary: cfg.Market.CacheTTL.Summary,
		},
		cfg.Market.Translate.TargetLocale,
	)
}

// ProvideMarketData exposes the fetcher under the usecase-facing interface.
func ProvideMarketData(f *marketdata.Fetcher) usecase.MarketData { return f }

// ProvideConsultant creates the scoring engine.
func ProvideConsultant() *usecase.Consultant {
	return usecase.NewConsultant()
}

// ProvideAdvisor creates the consultation pipeline.
func ProvideAdvisor(
	data usecase.MarketData,
	consultant *usecase.Consultant,
	store repository.AdviceStore,
	publisher repository.AdvicePublisher,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.Advisor {
	return usecase.NewAdvisor(data, consultant, store, publisher, m, log)
}

// ProvideScanner creates the universe scanner with its own RNG so scans do
// not share a rand source with the battle simulator.
func ProvideScanner(data usecase.MarketData, consultant *usecase.Consultant) *usecase.Scanner {
	return usecase.NewScanner(data, consultant, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ProvideBattleSimulator creates the investor battle simulator.
func ProvideBattleSimulator(data usecase.MarketData) *usecase.BattleSimulator {
	return usecase.NewBattleSimulator(data, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ProvideCalendar creates the market calendar builder.
func ProvideCalendar() *usecase.Calendar {
	return usecase.NewCalendar(time.Now)
}

// ProvideTimeMachine creates the backtest calculator.
func ProvideTimeMachine(data usecase.MarketData) *usecase.TimeMachine {
	return usecase.NewTimeMachine(data)
}

// ProvideChatGuide creates the rule-based chat responder.
func ProvideChatGuide(data usecase.MarketData, consultant *usecase.Consultant) *usecase.ChatGuide {
	return usecase.NewChatGuide(data, consultant)
}

// ProvidePortfolioAnalyzer creates the portfolio diagnostics engine.
func ProvidePortfolioAnalyzer() *usecase.PortfolioAnalyzer {
	return usecase.NewPortfolioAnalyzer()
}

// ProvideRegimeClassifier creates the market regime classifier.
func ProvideRegimeClassifier() *usecase.RegimeClassifier {
	return usecase.NewRegimeClassifier()
}

// ProvideSeasonalityAnalyzer creates the weekday seasonality analyzer.
func ProvideSeasonalityAnalyzer() *usecase.SeasonalityAnalyzer {
	return usecase.NewSeasonalityAnalyzer()
}

// ProvideVolatilityInferer creates the price-move explainer.
func ProvideVolatilityInferer() *usecase.VolatilityInferer {
	return usecase.NewVolatilityInferer()
}

// ProvideMarketHandler creates the market-wide endpoints handler.
func ProvideMarketHandler(
	fetcher *marketdata.Fetcher,
	regime *usecase.RegimeClassifier,
	scanner *usecase.Scanner,
	respCache icache.BytesCache,
	log *applogger.Logger,
) *api.MarketHandler {
	h := api.NewMarketHandler(fetcher, regime, scanner, log)
	h.SetCache(respCache)
	return h
}

// ProvideStockHandler creates the per-ticker endpoints handler.
func ProvideStockHandler(
	fetcher *marketdata.Fetcher,
	seasonality *usecase.SeasonalityAnalyzer,
	volatility *usecase.VolatilityInferer,
	scanner *usecase.Scanner,
	log *applogger.Logger,
) *api.StockHandler {
	return api.NewStockHandler(fetcher, seasonality, volatility, scanner, log)
}

// ProvideConsultHandler creates the consultation endpoints handler.
func ProvideConsultHandler(
	advisor *usecase.Advisor,
	scanner *usecase.Scanner,
	chat *usecase.ChatGuide,
	log *applogger.Logger,
) *api.ConsultHandler {
	return api.NewConsultHandler(advisor, scanner, chat, log)
}

// ProvidePortfolioHandler creates the watchlist/portfolio endpoints handler.
func ProvidePortfolioHandler(
	sqlStore *internalrepo.SQLiteStore,
	fetcher *marketdata.Fetcher,
	analyzer *usecase.PortfolioAnalyzer,
	log *applogger.Logger,
) *api.PortfolioHandler {
	return api.NewPortfolioHandler(sqlStore, sqlStore, fetcher, analyzer, log)
}

// ProvideFeaturesHandler creates the battle/calendar/time-machine handler.
func ProvideFeaturesHandler(
	battle *usecase.BattleSimulator,
	cal *usecase.Calendar,
	tm *usecase.TimeMachine,
	sqlStore *internalrepo.SQLiteStore,
	log *applogger.Logger,
) *api.FeaturesHandler {
	return api.NewFeaturesHandler(battle, cal, tm, sqlStore, log)
}

// ProvideMarketStream creates the WebSocket market summary stream.
func ProvideMarketStream(fetcher *marketdata.Fetcher, cfg *config.Config, log *applogger.Logger) *ws.MarketStream {
	return ws.NewMarketStream(fetcher, cfg.Stream.PushInterval, log)
}

// ProvideScheduler creates the cache warmup scheduler, or nil when
// disabled.
func ProvideScheduler(fetcher *marketdata.Fetcher, cfg *config.Config, log *applogger.Logger) (*scheduler.Scheduler, error) {
	if !cfg.Scheduler.Enabled {
		return nil, nil
	}
	s := scheduler.New(fetcher, log)
	if err := s.Register(cfg.Scheduler.WarmupSpec); err != nil {
		return nil, err
	}
	return s, nil
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	market *api.MarketHandler,
	stock *api.StockHandler,
	consult *api.ConsultHandler,
	portfolio *api.PortfolioHandler,
	features *api.FeaturesHandler,
	stream *ws.MarketStream,
	sched *scheduler.Scheduler,
	sqlStore *internalrepo.SQLiteStore,
	adviceStore repository.AdviceStore,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, log, server.Components{
		Handlers:    []xhttp.Handler{market, stock, consult, portfolio, features, stream},
		Scheduler:   sched,
		SQLite:      sqlStore,
		AdviceStore: adviceStore,
		Producer:    producer,
	})
}
