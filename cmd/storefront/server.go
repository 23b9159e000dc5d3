package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trendwear/storefront/internal/admin"
	"github.com/trendwear/storefront/internal/cart"
	"github.com/trendwear/storefront/internal/logger"
	"github.com/trendwear/storefront/internal/order"
	"github.com/trendwear/storefront/internal/payment"
	"github.com/trendwear/storefront/internal/router"
	storage "github.com/trendwear/storefront/internal/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	deliveryFee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		log.Fatalf("Invalid delivery fee %q: %v", cfg.DeliveryFee, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := storage.NewPostgresStorage(cfg.DatabaseConnection)
	if err != nil {
		log.Fatalf("Failed to initialize Postgres storage: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}()

	gateway := &payment.HTTPGatewayClient{
		Client:    &http.Client{Timeout: cfg.GatewayTimeout},
		BaseURL:   cfg.GatewayAddress,
		KeyID:     cfg.GatewayKeyID,
		KeySecret: cfg.GatewayKeySecret,
	}

	orderSvc := order.NewService(store, store, store, deliveryFee)
	orderHandler := order.NewHandler(orderSvc)

	paymentSvc := payment.NewService(store, gateway, cfg.GatewayKeySecret, cfg.Currency)
	paymentHandler := payment.NewHandler(paymentSvc)

	adminSvc := admin.NewService(store, store, store)
	adminHandler := admin.NewHandler(adminSvc)

	cartSvc := cart.NewService(store)
	cartHandler := cart.NewHandler(cartSvc)

	r := router.NewRouter(orderHandler, paymentHandler, adminHandler, cartHandler, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
