package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"evercraft/internal/actions"
	"evercraft/internal/analytics"
	"evercraft/internal/api"
	"evercraft/internal/cache"
	"evercraft/internal/common/config"
	"evercraft/internal/common/database"
	"evercraft/internal/common/logger"
	"evercraft/internal/notify"
	"evercraft/internal/payouts"
	"evercraft/internal/scoring"
	"evercraft/internal/search"
	"evercraft/internal/store"
)

const connectAttempts = 5

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	pg, err := connectPostgres(cfg.Database.Postgres, log)
	if err != nil {
		log.WithError(err).Error("postgres unavailable", nil)
		os.Exit(1)
	}
	defer pg.Close()

	redisClient, err := connectRedis(cfg.Database.Redis, log)
	if err != nil {
		// the cache degrades to a no-op without redis
		log.WithError(err).Warn("redis unavailable, caching disabled", nil)
	}

	esClient, err := connectElasticsearch(cfg.Database.Elasticsearch, log)
	if err != nil {
		log.WithError(err).Warn("elasticsearch unavailable, search disabled", nil)
	}

	notifier, err := notify.New(cfg.Notifications, log)
	if err != nil {
		log.WithError(err).Error("notifier init failed", nil)
		os.Exit(1)
	}

	applicationStore := store.NewApplicationStore(pg.DB)
	shopStore := store.NewShopStore(pg.DB)
	productStore := store.NewProductStore(pg.DB)
	shippingStore := store.NewShippingStore(pg.DB)
	userStore := store.NewUserStore(pg.DB)
	ledgerStore := store.NewLedgerStore(pg.DB)

	catalogCache := cache.New(redisClientOrNil(redisClient), log)
	productIndex := search.NewIndex(esClientOrNil(esClient), cfg.Database.Elasticsearch.ProductIndex, log)

	scorer := scoring.NewScorer(cfg.Scoring)
	applicationActions := actions.NewApplicationActions(applicationStore, shopStore, userStore, scorer, notifier, log)
	productActions := actions.NewProductActions(productStore, shopStore, catalogCache, productIndex, log)
	shippingActions := actions.NewShippingActions(shippingStore, log)
	paymentActions := actions.NewPaymentActions(ledgerStore, cfg.Payouts, log)
	analyticsService := analytics.NewService(ledgerStore, cfg.Analytics, log)
	payoutService := payouts.NewService(ledgerStore, shopStore, userStore, notifier, cfg.Payouts, log)

	server := api.NewServer(api.Deps{
		Config:       *cfg,
		Logger:       log,
		Shops:        shopStore,
		Products:     productStore,
		Nonprofits:   ledgerStore,
		Searcher:     productIndex,
		Cache:        catalogCache,
		Applications: applicationActions,
		ProductOps:   productActions,
		ShippingOps:  shippingActions,
		PaymentOps:   paymentActions,
		Analytics:    analyticsService,
		Payouts:      payoutService,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: server.Router(),
	}
	metricsServer := &http.Server{
		Addr:    cfg.Server.MetricsAddress,
		Handler: promhttp.Handler(),
	}

	go func() {
		log.Info("metrics listening", map[string]interface{}{"address": metricsServer.Addr})
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server failed", nil)
		}
	}()
	go func() {
		log.Info("api listening", map[string]interface{}{"address": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("api server failed", nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("api shutdown failed", nil)
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("metrics shutdown failed", nil)
	}
	if redisClient != nil {
		redisClient.Close()
	}
	log.Info("stopped", nil)
}

func connectPostgres(cfg config.PostgresConfig, log logger.Logger) (*database.PostgresClient, error) {
	client, err := database.NewPostgres(cfg)
	if err != nil {
		return nil, err
	}
	err = withRetry(log, "postgres", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Ping(ctx)
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func connectRedis(cfg config.RedisConfig, log logger.Logger) (*database.RedisClient, error) {
	client, err := database.NewRedis(cfg)
	if err != nil {
		return nil, err
	}
	err = withRetry(log, "redis", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return client.Ping(ctx)
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func connectElasticsearch(cfg config.ElasticsearchConfig, log logger.Logger) (*database.ElasticsearchClient, error) {
	client, err := database.NewElasticsearch(cfg)
	if err != nil {
		return nil, err
	}
	if err := withRetry(log, "elasticsearch", client.Ping); err != nil {
		return nil, err
	}
	return client, nil
}

// withRetry pings with exponential backoff: 1s, 2s, 4s, 8s between attempts.
func withRetry(log logger.Logger, name string, ping func() error) error {
	var err error
	backoff := time.Second
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = ping(); err == nil {
			return nil
		}
		if attempt < connectAttempts {
			log.WithError(err).Warn("connection attempt failed", map[string]interface{}{
				"target":  name,
				"attempt": attempt,
				"backoff": backoff.String(),
			})
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return err
}

func redisClientOrNil(c *database.RedisClient) *redis.Client {
	if c == nil {
		return nil
	}
	return c.Client
}

func esClientOrNil(c *database.ElasticsearchClient) *elasticsearch.Client {
	if c == nil {
		return nil
	}
	return c.Client
}
