package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var AppEnv Config

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	MongoURI string `envconfig:"MONGO_URI"`
	DBName   string `envconfig:"DB_NAME" default:"nativedelight"`

	CatalogSource   string        `envconfig:"CATALOG_SOURCE" default:"mongo"`
	CatalogAPIURL   string        `envconfig:"CATALOG_API_URL"`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"1m"`
	CatalogTimeout  time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`

	PaymentAPIURL  string        `envconfig:"PAYMENT_API_URL"`
	PaymentTimeout time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"15s"`

	WhatsAppNumber  string        `envconfig:"WHATSAPP_NUMBER" default:"2348142809371"`
	CurrencySymbol  string        `envconfig:"CURRENCY_SYMBOL" default:"N"`
	OrderResetDelay time.Duration `envconfig:"ORDER_RESET_DELAY" default:"3s"`

	SessionSecret   string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"2h"`
	SessionTokenTTL time.Duration `envconfig:"SESSION_TOKEN_TTL" default:"24h"`
	SessionCapacity int           `envconfig:"SESSION_CAPACITY" default:"10000"`

	CORSOrigins  []string `envconfig:"CORS_ORIGINS" default:"*"`
	CookieSecure bool     `envconfig:"COOKIE_SECURE" default:"false"`

	// DotEnvLoaded is false when no .env file could be read; the process
	// environment is still used.
	DotEnvLoaded bool `ignored:"true"`
}

// Load reads .env when present, decodes the environment into AppEnv and
// validates the result.
func Load() error {
	dotEnvErr := godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	cfg.DotEnvLoaded = dotEnvErr == nil

	if err := cfg.Validate(); err != nil {
		return err
	}

	AppEnv = cfg
	return nil
}
