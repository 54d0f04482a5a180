package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile          = ".env"
	defaultPort             = "8080"
	defaultReadTimeout      = 15 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 120 * time.Second
	defaultUpstreamTimeout  = 10 * time.Second
	defaultRateLimitDefault = 120
	defaultRateLimitProxy   = 60
	defaultSquareBaseURL    = "https://connect.squareup.com"
	defaultSquareVersion    = "2023-12-13"
	defaultPrintifyBaseURL  = "https://api.printify.com/v1"
	defaultCatalogSource    = "square"
	defaultPlaceholderImage = "/placeholder-product.jpg"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server      ServerConfig
	Square      SquareConfig
	WooCommerce WooCommerceConfig
	Printify    PrintifyConfig
	Catalog     CatalogConfig
	RateLimits  RateLimitConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SquareConfig stores Square Catalog API credentials and endpoints.
type SquareConfig struct {
	AccessToken string
	LocationID  string
	BaseURL     string
	Version     string
}

// WooCommerceConfig stores WooCommerce REST API credentials.
type WooCommerceConfig struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
}

// PrintifyConfig stores Printify API credentials and endpoints.
type PrintifyConfig struct {
	APIToken string
	ShopID   string
	BaseURL  string
}

// CatalogConfig controls catalog normalisation behaviour.
type CatalogConfig struct {
	DefaultSource    string
	PlaceholderImage string
	UpstreamTimeout  time.Duration
}

// RateLimitConfig controls request throttling.
type RateLimitConfig struct {
	DefaultPerMinute int
	ProxyPerMinute   int
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults, .env overrides,
// and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "API_SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "API_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "API_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "API_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Square: SquareConfig{
			AccessToken: stringWithDefault(lookup, "SQUARE_ACCESS_TOKEN", ""),
			LocationID:  stringWithDefault(lookup, "SQUARE_LOCATION_ID", ""),
			BaseURL:     stringWithDefault(lookup, "SQUARE_API_BASE_URL", defaultSquareBaseURL),
			Version:     stringWithDefault(lookup, "SQUARE_API_VERSION", defaultSquareVersion),
		},
		WooCommerce: WooCommerceConfig{
			StoreURL:       stringWithDefault(lookup, "WC_STORE_URL", ""),
			ConsumerKey:    stringWithDefault(lookup, "WC_CONSUMER_KEY", ""),
			ConsumerSecret: stringWithDefault(lookup, "WC_CONSUMER_SECRET", ""),
		},
		Printify: PrintifyConfig{
			APIToken: stringWithDefault(lookup, "PRINTIFY_API_TOKEN", ""),
			ShopID:   stringWithDefault(lookup, "PRINTIFY_SHOP_ID", ""),
			BaseURL:  stringWithDefault(lookup, "PRINTIFY_API_BASE_URL", defaultPrintifyBaseURL),
		},
		Catalog: CatalogConfig{
			DefaultSource:    strings.ToLower(stringWithDefault(lookup, "API_CATALOG_DEFAULT_SOURCE", defaultCatalogSource)),
			PlaceholderImage: stringWithDefault(lookup, "API_CATALOG_PLACEHOLDER_IMAGE", defaultPlaceholderImage),
			UpstreamTimeout:  durationWithDefault(lookup, "API_CATALOG_UPSTREAM_TIMEOUT", defaultUpstreamTimeout),
		},
		RateLimits: RateLimitConfig{
			DefaultPerMinute: intWithDefault(lookup, "API_RATELIMIT_DEFAULT_PER_MIN", defaultRateLimitDefault),
			ProxyPerMinute:   intWithDefault(lookup, "API_RATELIMIT_PROXY_PER_MIN", defaultRateLimitProxy),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	switch cfg.Catalog.DefaultSource {
	case "square", "woocommerce", "printify":
	default:
		missing = append(missing, "Catalog.DefaultSource")
	}
	if cfg.Catalog.PlaceholderImage == "" {
		missing = append(missing, "Catalog.PlaceholderImage")
	}
	if cfg.Catalog.UpstreamTimeout <= 0 {
		missing = append(missing, "Catalog.UpstreamTimeout")
	}
	if cfg.RateLimits.DefaultPerMinute <= 0 {
		missing = append(missing, "RateLimits.DefaultPerMinute")
	}
	if cfg.RateLimits.ProxyPerMinute <= 0 {
		missing = append(missing, "RateLimits.ProxyPerMinute")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
