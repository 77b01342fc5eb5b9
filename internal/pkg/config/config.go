package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, collaborator URLs), security settings
// - default: Values common across all environments (rates, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	CORS        CORSConfig
	Log         LogConfig
	Ledger      LedgerConfig
	OrderSource OrderSourceConfig
	Gateway     GatewayConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// LedgerConfig carries the fixed checkout rates. Rates are decimal strings so
// they survive env round trips without float drift.
type LedgerConfig struct {
	TaxRate     string `envconfig:"LEDGER_TAX_RATE" default:"0.18"`
	FeeRate     string `envconfig:"LEDGER_FEE_RATE" default:"0.012"`
	FeeMinUnits int64  `envconfig:"LEDGER_FEE_MIN_UNITS" default:"5"`
}

type OrderSourceConfig struct {
	BaseURL string        `envconfig:"ORDER_SOURCE_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"ORDER_SOURCE_TIMEOUT" default:"5s"`
}

type GatewayConfig struct {
	BaseURL string        `envconfig:"GATEWAY_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"GATEWAY_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"15s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}
