// Package config handles loading and validation of service configuration.
// Supports both development (env vars) and production (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"printlane-bridge/internal/printlane"
	"printlane-bridge/internal/storefront"
)

// Config holds all service configuration.
// Environment determines whether secrets load from env vars (development) or
// Secret Manager (production).
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// GCP settings (required in production)
	GCPProject string
	StoreID    string

	// Store-specific configuration (loaded from secrets)
	Store StoreConfig
}

// StoreConfig contains store-specific settings.
// In production, this is loaded from Secret Manager as JSON.
// In development, loaded from individual env vars or CONFIG_FILE.
type StoreConfig struct {
	// Printlane credentials. ShopID identifies the store on the Printlane
	// side; key and secret authenticate order sync requests.
	ShopID    string `json:"shop_id"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`

	// APIBaseURL overrides the default Printlane order API endpoint.
	// Leave empty outside of tests and staging.
	APIBaseURL string `json:"api_base_url,omitempty"`
	StudioURL  string `json:"studio_url,omitempty"`
	ExportURL  string `json:"export_url,omitempty"`

	// Host platform settings.
	PlatformType  string `json:"platform_type"` // "woocommerce" or "shopify"
	StoreURL      string `json:"store_url"`
	StoreDomain   string `json:"store_domain"` // Derived from StoreURL if not set
	WebhookSecret string `json:"webhook_secret,omitempty"`

	// Designer widget settings.
	Language          string `json:"language,omitempty"`
	AddToCartText     string `json:"add_to_cart_text,omitempty"`
	CustomizationText string `json:"customization_text,omitempty"`
	ButtonSelector    string `json:"button_selector,omitempty"`
	CartThumbnails    bool   `json:"cart_thumbnails,omitempty"`
	HideReference     bool   `json:"hide_reference,omitempty"`
}

// HasCredentials reports whether the Printlane credential triple is
// complete. Order sync is disabled without it.
func (s StoreConfig) HasCredentials() bool {
	return s.ShopID != "" && s.APIKey != "" && s.APISecret != ""
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set) → ENV vars / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// If CONFIG_FILE is set, load everything from the JSON file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		GCPProject:  os.Getenv("GCP_PROJECT"),
		StoreID:     os.Getenv("STORE_ID"),
	}

	// StoreID required in all environments
	if cfg.StoreID == "" {
		return nil, fmt.Errorf("STORE_ID environment variable required")
	}

	var err error
	if cfg.Environment == "production" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		err = cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading store config: %w", err)
	}

	cfg.finish()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig struct {
		Port        string      `json:"port"`
		Environment string      `json:"environment"`
		LogLevel    string      `json:"log_level"`
		StoreID     string      `json:"store_id"`
		Store       StoreConfig `json:"store"`
	}
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:        withDefault(fileConfig.Port, "8080"),
		Environment: withDefault(fileConfig.Environment, "development"),
		LogLevel:    withDefault(fileConfig.LogLevel, "info"),
		StoreID:     fileConfig.StoreID,
		Store:       fileConfig.Store,
	}

	cfg.finish()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish fills defaults derivable from other fields.
func (c *Config) finish() {
	if c.Store.PlatformType == "" {
		c.Store.PlatformType = "woocommerce"
	}
	if c.Store.StoreDomain == "" && c.Store.StoreURL != "" {
		c.Store.StoreDomain = extractDomain(c.Store.StoreURL)
	}
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// loadFromSecretManager fetches store config from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{store_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.StoreID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Store); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}
	return nil
}

// loadFromEnv reads store config from individual environment variables.
// Used in development mode for local testing.
func (c *Config) loadFromEnv() error {
	c.Store = StoreConfig{
		ShopID:            os.Getenv("PRINTLANE_SHOP_ID"),
		APIKey:            os.Getenv("PRINTLANE_API_KEY"),
		APISecret:         os.Getenv("PRINTLANE_API_SECRET"),
		APIBaseURL:        os.Getenv("PRINTLANE_API_BASE_URL"),
		StudioURL:         os.Getenv("PRINTLANE_STUDIO_URL"),
		ExportURL:         os.Getenv("PRINTLANE_EXPORT_URL"),
		PlatformType:      os.Getenv("STORE_PLATFORM"),
		StoreURL:          os.Getenv("STORE_URL"),
		StoreDomain:       os.Getenv("STORE_DOMAIN"),
		WebhookSecret:     os.Getenv("STORE_WEBHOOK_SECRET"),
		Language:          os.Getenv("WIDGET_LANGUAGE"),
		AddToCartText:     os.Getenv("WIDGET_ADD_TO_CART_TEXT"),
		CustomizationText: os.Getenv("WIDGET_CUSTOMIZATION_TEXT"),
		ButtonSelector:    os.Getenv("WIDGET_BUTTON_SELECTOR"),
		CartThumbnails:    os.Getenv("WIDGET_CART_THUMBNAILS") == "true",
		HideReference:     os.Getenv("WIDGET_HIDE_REFERENCE") == "true",
	}
	return nil
}

// validate checks that all required configuration fields are present.
// Printlane credentials are deliberately NOT required: a store without them
// runs with sync disabled, which must never block the storefront.
func (c *Config) validate() error {
	switch c.Store.PlatformType {
	case "woocommerce", "shopify":
	default:
		return fmt.Errorf("unsupported platform_type %q", c.Store.PlatformType)
	}

	if c.Store.StoreURL == "" {
		return fmt.Errorf("store_url is required")
	}
	if _, err := url.Parse(c.Store.StoreURL); err != nil {
		return fmt.Errorf("invalid store_url: %w", err)
	}

	// A partial credential triple is almost certainly a misconfiguration;
	// reject it instead of silently disabling sync.
	partial := c.Store.ShopID != "" || c.Store.APIKey != "" || c.Store.APISecret != ""
	if partial && !c.Store.HasCredentials() {
		return fmt.Errorf("incomplete Printlane credentials: shop_id, api_key and api_secret must all be set")
	}
	return nil
}

// BuildSyncConfig creates the Printlane client configuration for this store.
func (c *Config) BuildSyncConfig() printlane.Config {
	return printlane.Config{
		ShopID:      c.Store.ShopID,
		APIKey:      c.Store.APIKey,
		APISecret:   c.Store.APISecret,
		BaseURL:     c.Store.APIBaseURL,
		StoreDomain: c.Store.StoreDomain,
		StudioURL:   c.Store.StudioURL,
		ExportURL:   c.Store.ExportURL,
	}
}

// BuildWidgetSettings creates the storefront widget settings for this store.
func (c *Config) BuildWidgetSettings() storefront.Settings {
	return storefront.Settings{
		ShopID:            c.Store.ShopID,
		Language:          c.Store.Language,
		AddToCartText:     c.Store.AddToCartText,
		CustomizationText: c.Store.CustomizationText,
		ButtonSelector:    c.Store.ButtonSelector,
		CartThumbnails:    c.Store.CartThumbnails,
		HideReference:     c.Store.HideReference,
	}
}

// extractDomain parses the domain from a URL string.
func extractDomain(storeURL string) string {
	u, err := url.Parse(storeURL)
	if err != nil || u.Host == "" {
		// Fallback: strip protocol prefix manually
		domain := strings.TrimPrefix(storeURL, "https://")
		domain = strings.TrimPrefix(domain, "http://")
		return strings.Split(domain, "/")[0]
	}
	return u.Host
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
