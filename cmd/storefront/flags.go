package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Address            string        `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`
	DatabaseConnection string        `env:"DATABASE_URI"`
	JWTSecret          string        `env:"JWT_SECRET"`
	GatewayKeyID       string        `env:"GATEWAY_KEY_ID"`
	GatewayKeySecret   string        `env:"GATEWAY_KEY_SECRET"`
	GatewayAddress     string        `env:"GATEWAY_ADDRESS" envDefault:"https://api.razorpay.com"`
	GatewayTimeout     time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
	Currency           string        `env:"CURRENCY" envDefault:"INR"`
	DeliveryFee        string        `env:"DELIVERY_FEE" envDefault:"40"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	loglevel := flag.String("l", cfg.LogLevel, "Log level for server")
	databaseConnection := flag.String("d", cfg.DatabaseConnection, "Database connection string")
	gatewayAddress := flag.String("g", cfg.GatewayAddress, "Payment gateway base URL")
	gatewayTimeout := flag.Duration("t", cfg.GatewayTimeout, "Payment gateway call timeout (e.g. 10s)")
	deliveryFee := flag.String("f", cfg.DeliveryFee, "Flat delivery fee added to every order")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.DatabaseConnection = *databaseConnection
	cfg.GatewayAddress = *gatewayAddress
	cfg.GatewayTimeout = *gatewayTimeout
	cfg.DeliveryFee = *deliveryFee

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ENV JWT_SECRET must be set")
	}
	if cfg.GatewayKeySecret == "" {
		return nil, fmt.Errorf("ENV GATEWAY_KEY_SECRET must be set")
	}

	return cfg, nil
}
