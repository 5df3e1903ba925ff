package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Shahriar-Fardows/snowfye-server/internal/auth"
	"github.com/Shahriar-Fardows/snowfye-server/internal/cache"
	"github.com/Shahriar-Fardows/snowfye-server/internal/config"
	"github.com/Shahriar-Fardows/snowfye-server/internal/events"
	h "github.com/Shahriar-Fardows/snowfye-server/internal/http"
	"github.com/Shahriar-Fardows/snowfye-server/internal/repository"
	s "github.com/Shahriar-Fardows/snowfye-server/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger level comes from config, so this one goes out bare
		zap.NewExample().Fatal("Failed to load config", zap.Error(err))
	}

	lg, err := newLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("Failed to build logger", zap.Error(err))
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return errors.Wrap(err, "connect mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoDB.Client().Disconnect(dctx); err != nil {
			lg.Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()
	lg.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	if err := repository.RunMigrations(mongoDB); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	var catalogCache cache.CatalogCache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return errors.Wrap(err, "redis ping")
		}
		lg.Info("Redis ping succeeded", zap.String("addr", cfg.Redis.Addr))
		catalogCache = cache.NewBreaker(cache.NewRedisCache(redisClient, cfg.Redis.TTL), lg.Named("cache"))
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		lg.Info("Publishing cart events",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			lg.Warn("Close event publisher failed", zap.Error(err))
		}
	}()

	if len(cfg.Kafka.Brokers) > 0 && cfg.Redis.Addr != "" {
		inv := events.NewInvalidator(catalogCache, lg.Named("invalidator"), repository.ProductsCollection,
			cfg.Kafka.CatalogTopic, cfg.Kafka.GroupID, cfg.Kafka.Brokers...)
		invCtx, stopInv := context.WithCancel(ctx)
		go inv.Run(invCtx)
		defer func() {
			stopInv()
			if err := inv.Close(); err != nil {
				lg.Warn("Close catalog invalidator failed", zap.Error(err))
			}
		}()
	}

	issuer, err := auth.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return errors.Wrap(err, "token issuer")
	}

	cartService := s.NewCartService(repository.NewMongoCartRepository(mongoDB), publisher, lg.Named("cart"))
	// runs before the publisher is closed
	defer cartService.Wait()
	catalogService := s.NewCatalogService(repository.NewMongoCatalogRepository(mongoDB), catalogCache, lg.Named("catalog"))
	promoService := s.NewPromoService(repository.NewMongoPromoRepository(mongoDB))

	router := h.NewRouter(h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		CORSOrigins:        cfg.CORS.Origins,
	}, lg.Named("http"), h.Handlers{
		Cart:    h.NewCartHandler(cartService, cfg.RequestTimeout, lg),
		Catalog: h.NewCatalogHandler(catalogService, cfg.RequestTimeout, lg),
		Promo:   h.NewPromoHandler(promoService, cfg.RequestTimeout, lg),
		Auth:    h.NewAuthHandler(issuer, lg),
		Ping: func(ctx context.Context) error {
			return mongoDB.Client().Ping(ctx, nil)
		},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		lg.Info("Shutting down server", zap.String("signal", sig.String()))
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "serve")
		}
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	lg.Info("Server stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
