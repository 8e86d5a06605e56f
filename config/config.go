package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App      AppConfig
	HTTP     ServerConfig
	GRPC     GRPCConfig
	Log      LogConfig
	Stripe   StripeConfig
	Payments PaymentsConfig
	Network  NetworkConfig
}

type AppConfig struct {
	ServiceName string
	Environment string
}

type ServerConfig struct {
	Host string
	Port string
}

type GRPCConfig struct {
	Enabled bool
	Host    string
	Port    string
}

type LogConfig struct {
	Level  string
	Format string
}

type StripeConfig struct {
	SecretKey                 string
	WebhookSecret             string
	APIBaseURL                string
	SignatureToleranceSeconds int64
}

type PaymentsConfig struct {
	DefaultCurrency string
}

type NetworkConfig struct {
	PrimarySubnet string
}

// Load reads configuration from the process environment, after merging an
// optional .env file. The returned value is not modified after startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	return &Config{
		App: AppConfig{
			ServiceName: getString(k, "APP_SERVICE_NAME", "payment-gateway"),
			Environment: getString(k, "APP_ENV", "development"),
		},
		HTTP: ServerConfig{
			Host: getString(k, "HTTP_HOST", "0.0.0.0"),
			Port: getString(k, "HTTP_PORT", getString(k, "PORT", "3001")),
		},
		GRPC: GRPCConfig{
			Enabled: getBool(k, "GRPC_ENABLED", true),
			Host:    getString(k, "GRPC_HOST", "0.0.0.0"),
			Port:    getString(k, "GRPC_PORT", "9090"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getString(k, "LOG_LEVEL", "info")),
			Format: strings.ToLower(getString(k, "LOG_FORMAT", "text")),
		},
		Stripe: StripeConfig{
			SecretKey:                 getString(k, "STRIPE_SECRET_KEY", ""),
			WebhookSecret:             getString(k, "STRIPE_WEBHOOK_SECRET", ""),
			APIBaseURL:                getString(k, "STRIPE_API_BASE_URL", ""),
			SignatureToleranceSeconds: int64(getInt(k, "STRIPE_SIGNATURE_TOLERANCE_SECONDS", 300)),
		},
		Payments: PaymentsConfig{
			DefaultCurrency: strings.ToLower(getString(k, "PAYMENTS_DEFAULT_CURRENCY", "brl")),
		},
		Network: NetworkConfig{
			PrimarySubnet: getString(k, "NETWORK_PRIMARY_SUBNET", "192.168.1."),
		},
	}, nil
}

func getString(k *koanf.Koanf, key, defaultValue string) string {
	if value := strings.TrimSpace(k.String(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(k *koanf.Koanf, key string, defaultValue int) int {
	if value := strings.TrimSpace(k.String(key)); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(k *koanf.Koanf, key string, defaultValue bool) bool {
	if value := strings.TrimSpace(k.String(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
