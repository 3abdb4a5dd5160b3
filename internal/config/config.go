package config

import (
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultPort        = "8080"
	defaultCORSOrigins = "http://localhost:3000,http://127.0.0.1:3000"
)

type Config struct {
	Port        string
	AppEnv      string // "production" enforces webhook signature checks
	CORSOrigins []string

	ShopifyWebhookSecret string
	ShopifyShopDomain    string
	ShopifyAccessToken   string
	AdminAPIToken        string
}

// Load reads configuration from the environment. godotenv/autoload has
// already merged a local .env file by the time this runs.
func Load() Config {
	cfg := Config{
		Port:                 os.Getenv("PORT"),
		AppEnv:               os.Getenv("APP_ENV"),
		ShopifyWebhookSecret: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),
		ShopifyShopDomain:    os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		ShopifyAccessToken:   os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		AdminAPIToken:        os.Getenv("ADMIN_API_TOKEN"),
	}

	if cfg.Port == "" {
		log.Printf("WARN: PORT not set, using default %s", defaultPort)
		cfg.Port = defaultPort
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.IsProduction() && cfg.ShopifyWebhookSecret == "" {
		log.Printf("WARN: SHOPIFY_WEBHOOK_SECRET not set, webhook verification will reject everything")
	}
	if cfg.AdminAPIToken == "" {
		log.Printf("WARN: ADMIN_API_TOKEN not set, product sync endpoint is disabled")
	}

	corsEnv := os.Getenv("CORS_ORIGINS")
	if corsEnv == "" {
		corsEnv = defaultCORSOrigins
	}
	cfg.CORSOrigins = parseCSV(corsEnv)

	return cfg
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
