package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/krishma/storefront/internal/auth"
	"github.com/krishma/storefront/internal/backend"
	"github.com/krishma/storefront/internal/cart"
	"github.com/krishma/storefront/internal/catalog"
	"github.com/krishma/storefront/internal/checkout"
	"github.com/krishma/storefront/internal/httpapi"
	"github.com/krishma/storefront/internal/logger"
	"github.com/krishma/storefront/internal/tracker"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	RedisAddr       string
	KafkaBrokers    string
	KafkaTopic      string
	LogLevel        string
	LogFormat       string
	RequestTimeout  time.Duration
	BackendTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:5000"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "storefront-events"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		RequestTimeout:  30 * time.Second,
		BackendTimeout:  10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	backendClient := backend.New(cfg.BackendURL, cfg.BackendTimeout, log)

	// Carts live in Redis when an address is configured, otherwise in
	// process memory. Both expire sessions on the same TTL.
	var cartStore cart.Store
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cartStore = cart.NewRedisStore(redisClient)
		log.Info("using redis cart store", zap.String("addr", cfg.RedisAddr))
	} else {
		cartStore = cart.NewMemoryStore()
		log.Info("using in-memory cart store")
	}

	var sink tracker.Sink
	if cfg.KafkaBrokers != "" {
		sink = tracker.NewKafkaSink(cfg.KafkaTopic, strings.Split(cfg.KafkaBrokers, ",")...)
		log.Info("publishing events to kafka", zap.String("topic", cfg.KafkaTopic))
	} else {
		sink = tracker.NewHTTPSink(backendClient)
	}
	eventTracker := tracker.New(sink, log)

	cartService := cart.NewService(cartStore, log)
	checkoutService := checkout.NewService(backendClient, cartService, eventTracker, log)
	catalogFetcher := catalog.NewFetcher(backendClient)
	sessions := auth.NewSessionManager()

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Sessions:       sessions,
		Backend:        backendClient,
		Cart:           cartService,
		Checkout:       checkoutService,
		Catalog:        catalogFetcher,
		Tracker:        eventTracker,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	eventTracker.Close()
	sessions.Close()
	if err := cartStore.Close(); err != nil {
		log.Error("failed to close cart store", zap.Error(err))
	}

	log.Info("server exited")
}
