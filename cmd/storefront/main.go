package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sneakhaus/storefront/internal/backend"
	"github.com/sneakhaus/storefront/internal/cart"
	"github.com/sneakhaus/storefront/internal/catalog"
	"github.com/sneakhaus/storefront/internal/checkout"
	"github.com/sneakhaus/storefront/internal/payment"
	"github.com/sneakhaus/storefront/internal/storage"

	h "github.com/sneakhaus/storefront/internal/http"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	BackendBaseURL  string
	RequestTimeout  time.Duration
	BackendTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
		RequestTimeout:  30 * time.Second,
		BackendTimeout:  15 * time.Second,
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

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	store := storage.NewRedisStorage(redisClient)

	backendClient := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
	})

	carts := cart.NewService(store)
	products := catalog.NewService(backendClient)
	checkouts := checkout.NewService(carts, backendClient)
	payments := payment.NewService(backendClient)

	router := h.NewRouter(
		h.NewCartHandler(carts, cfg.RequestTimeout),
		h.NewProductHandler(products, cfg.RequestTimeout),
		h.NewCheckoutHandler(checkouts, cfg.RequestTimeout),
		h.NewPaymentHandler(payments, cfg.RequestTimeout),
		h.NewThemeHandler(store, cfg.RequestTimeout),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s (backend %s)", cfg.HTTPPort, cfg.BackendBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
