package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight/cmd"
	"freight/internal/adapters/out/geocoder"
	"freight/internal/adapters/out/kafka"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/userrepo"
	"freight/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := newLogger(config.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	gormDB, err := gorm.Open(pgdriver.Open(config.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	if err = migrate(gormDB); err != nil {
		return err
	}

	geo, closeGeo := newGeocoder(ctx, config, logger)
	defer closeGeo()

	publisher, closePublisher, err := newPublisher(config, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := cmd.NewCompositionRoot(config, gormDB, publisher, geo, registry, logger)
	e := app.CreateHTTPServer()
	jobManager := app.CreateJobManager()

	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("port", config.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func migrate(db *gorm.DB) error {
	if err := userrepo.Migrate(db); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := orderrepo.Migrate(db); err != nil {
		return fmt.Errorf("migrate orders: %w", err)
	}
	return nil
}

// newGeocoder puts the redis cache in front of Nominatim when REDIS_ADDR is set.
func newGeocoder(ctx context.Context, config cmd.Config, logger *zap.Logger) (ports.Geocoder, func()) {
	nominatim := geocoder.NewNominatimClient(
		config.GeocoderBaseURL,
		config.GeocoderUserAgent,
		config.GeocoderTimeout,
		geocoder.DefaultRetryConfig(),
		logger,
	)
	if config.RedisAddr == "" {
		return nominatim, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis is unreachable, geocoding uncached until it recovers", zap.Error(err))
	}

	cache := geocoder.NewCache(nominatim, client, config.GeocoderCacheTTL, config.GeocoderNegativeCacheTTL, logger)
	return cache, func() { _ = client.Close() }
}

// newPublisher returns a nil publisher when no brokers are configured; the
// unit of work then drops order events.
func newPublisher(config cmd.Config, logger *zap.Logger) (ports.EventPublisher, func(), error) {
	if len(config.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS is empty, order events are not published")
		return nil, func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(config.KafkaBrokers, "freight")
	if err != nil {
		return nil, nil, fmt.Errorf("connect to kafka: %w", err)
	}
	publisher := kafka.NewOrderPublisher(producer, config.KafkaOrderChangedTopic, logger)
	return publisher, func() { _ = publisher.Close() }, nil
}
