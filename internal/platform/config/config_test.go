package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(nil), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Square.BaseURL != defaultSquareBaseURL {
		t.Errorf("expected default square base url, got %s", cfg.Square.BaseURL)
	}
	if cfg.Square.Version != defaultSquareVersion {
		t.Errorf("expected default square version, got %s", cfg.Square.Version)
	}
	if cfg.Printify.BaseURL != defaultPrintifyBaseURL {
		t.Errorf("expected default printify base url, got %s", cfg.Printify.BaseURL)
	}
	if cfg.Catalog.DefaultSource != "square" {
		t.Errorf("expected default catalog source square, got %s", cfg.Catalog.DefaultSource)
	}
	if cfg.Catalog.PlaceholderImage != defaultPlaceholderImage {
		t.Errorf("unexpected placeholder image: %s", cfg.Catalog.PlaceholderImage)
	}
	if cfg.Catalog.UpstreamTimeout != defaultUpstreamTimeout {
		t.Errorf("unexpected upstream timeout: %s", cfg.Catalog.UpstreamTimeout)
	}
	if cfg.RateLimits.DefaultPerMinute != 120 {
		t.Errorf("unexpected default rate limit: %d", cfg.RateLimits.DefaultPerMinute)
	}
	if cfg.RateLimits.ProxyPerMinute != 60 {
		t.Errorf("unexpected proxy rate limit: %d", cfg.RateLimits.ProxyPerMinute)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"API_SERVER_PORT":               "9090",
		"API_SERVER_READ_TIMEOUT":       "20s",
		"API_SERVER_WRITE_TIMEOUT":      "25s",
		"API_SERVER_IDLE_TIMEOUT":       "2m",
		"SQUARE_ACCESS_TOKEN":           "sq-token",
		"SQUARE_LOCATION_ID":            "LOC123",
		"SQUARE_API_BASE_URL":           "https://connect.squareupsandbox.com",
		"SQUARE_API_VERSION":            "2024-01-18",
		"WC_STORE_URL":                  "https://shop.example.com",
		"WC_CONSUMER_KEY":               "ck_test",
		"WC_CONSUMER_SECRET":            "cs_test",
		"PRINTIFY_API_TOKEN":            "pf-token",
		"PRINTIFY_SHOP_ID":              "424242",
		"API_CATALOG_DEFAULT_SOURCE":    "Printify",
		"API_CATALOG_UPSTREAM_TIMEOUT":  "5s",
		"API_RATELIMIT_DEFAULT_PER_MIN": "150",
		"API_RATELIMIT_PROXY_PER_MIN":   "30",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected overridden port, got %s", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 25*time.Second {
		t.Errorf("unexpected write timeout: %s", cfg.Server.WriteTimeout)
	}
	if cfg.Square.AccessToken != "sq-token" {
		t.Errorf("unexpected square token: %s", cfg.Square.AccessToken)
	}
	if cfg.Square.BaseURL != "https://connect.squareupsandbox.com" {
		t.Errorf("unexpected square base url: %s", cfg.Square.BaseURL)
	}
	if cfg.WooCommerce.ConsumerSecret != "cs_test" {
		t.Errorf("unexpected wc consumer secret: %s", cfg.WooCommerce.ConsumerSecret)
	}
	if cfg.Printify.ShopID != "424242" {
		t.Errorf("unexpected printify shop id: %s", cfg.Printify.ShopID)
	}
	if cfg.Catalog.DefaultSource != "printify" {
		t.Errorf("expected lowercased default source, got %s", cfg.Catalog.DefaultSource)
	}
	if cfg.Catalog.UpstreamTimeout != 5*time.Second {
		t.Errorf("unexpected upstream timeout: %s", cfg.Catalog.UpstreamTimeout)
	}
	if cfg.RateLimits.DefaultPerMinute != 150 {
		t.Errorf("unexpected default rate limit: %d", cfg.RateLimits.DefaultPerMinute)
	}
}

func TestLoadDotEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	contents := "API_SERVER_PORT=7070\nSQUARE_LOCATION_ID=\"LOC-FROM-FILE\"\nexport PRINTIFY_SHOP_ID=999\n# comment\n"
	if err := os.WriteFile(envFile, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed writing env file: %v", err)
	}

	env := map[string]string{
		"API_SERVER_PORT": "9191",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(envFile))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9191" {
		t.Errorf("expected env map to win over dotenv, got %s", cfg.Server.Port)
	}
	if cfg.Square.LocationID != "LOC-FROM-FILE" {
		t.Errorf("expected dotenv value with quotes stripped, got %s", cfg.Square.LocationID)
	}
	if cfg.Printify.ShopID != "999" {
		t.Errorf("expected exported dotenv value, got %s", cfg.Printify.ShopID)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"API_CATALOG_DEFAULT_SOURCE":    "etsy",
		"API_RATELIMIT_DEFAULT_PER_MIN": "0",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	fields := vErr.Fields()
	want := map[string]bool{"Catalog.DefaultSource": false, "RateLimits.DefaultPerMinute": false}
	for _, field := range fields {
		if _, ok := want[field]; ok {
			want[field] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("expected %s in validation fields, got %v", field, fields)
		}
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	env := map[string]string{
		"API_SERVER_READ_TIMEOUT": "not-a-duration",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.ReadTimeout != defaultReadTimeout {
		t.Errorf("expected fallback read timeout, got %s", cfg.Server.ReadTimeout)
	}
}
