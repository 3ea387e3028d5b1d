package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	CatalogSourceMongo = "mongo"
	CatalogSourceHTTP  = "http"
)

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.CatalogSource)) {
	case CatalogSourceMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("MONGO_URI is required when CATALOG_SOURCE=mongo")
		}
	case CatalogSourceHTTP:
		if err := requireURL("CATALOG_API_URL", c.CatalogAPIURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q", CatalogSourceMongo, CatalogSourceHTTP)
	}

	if strings.TrimSpace(c.PaymentAPIURL) != "" {
		if err := requireURL("PAYMENT_API_URL", c.PaymentAPIURL); err != nil {
			return err
		}
	}
	if len(strings.TrimSpace(c.SessionSecret)) < 16 {
		return errors.New("SESSION_SECRET must be at least 16 characters")
	}
	if c.OrderResetDelay < 0 {
		return errors.New("ORDER_RESET_DELAY cannot be negative")
	}
	if c.SessionCapacity < 0 {
		return errors.New("SESSION_CAPACITY cannot be negative")
	}
	return nil
}

// CatalogFromHTTP reports whether the catalog is served by a remote API.
func (c Config) CatalogFromHTTP() bool {
	return strings.EqualFold(strings.TrimSpace(c.CatalogSource), CatalogSourceHTTP)
}

// CORSAllowCredentials is false when any origin is the wildcard, so a
// cross-origin page can never send the session cookie to a default deployment.
func (c Config) CORSAllowCredentials() bool {
	for _, origin := range c.CORSOrigins {
		if strings.TrimSpace(origin) == "*" {
			return false
		}
	}
	return len(c.CORSOrigins) > 0
}

func requireURL(key, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%s is required", key)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL", key)
	}
	return nil
}
