package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	JWTSecret       string
	FrontendBaseURL string
	PosthogAPIKey   string

	Kashier  KashierConfig
	URLs     URLConfig
	Rates    RatesConfig
	Checkout CheckoutConfig

	// HTTPClientTimeout bounds every outbound call (rate API and gateway).
	HTTPClientTimeout time.Duration
}

// KashierConfig holds the payment gateway credentials and endpoints.
type KashierConfig struct {
	MerchantID  string
	APIKey      string
	SecretKey   string
	TestMode    bool
	APIURL      string
	CheckoutURL string
}

// Mode returns the gateway mode string for the configured environment.
func (k KashierConfig) Mode() string {
	if k.TestMode {
		return "test"
	}
	return "live"
}

// MissingCredentials lists the names of required credentials that are empty.
func (k KashierConfig) MissingCredentials() []string {
	var missing []string
	if strings.TrimSpace(k.MerchantID) == "" {
		missing = append(missing, "merchant id")
	}
	if strings.TrimSpace(k.APIKey) == "" {
		missing = append(missing, "api key")
	}
	if strings.TrimSpace(k.SecretKey) == "" {
		missing = append(missing, "secret key")
	}
	return missing
}

// RatesConfig configures the live exchange rate source and cache.
type RatesConfig struct {
	APIURL   string
	CacheTTL time.Duration
}

// CheckoutConfig holds checkout presentation and input handling options.
type CheckoutConfig struct {
	SanitizeMode string
	Language     string
	Theme        string
	EmbedMode    string
	RateLimit    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")

	v.SetDefault("KASHIER_MERCHANT_ID", "")
	v.SetDefault("KASHIER_API_KEY", "")
	v.SetDefault("KASHIER_SECRET_KEY", "")
	v.SetDefault("KASHIER_TEST_MODE", true)
	v.SetDefault("KASHIER_API_URL", "https://api.kashier.io/v3/payment/sessions")
	v.SetDefault("KASHIER_CHECKOUT_URL", "https://checkout.kashier.io")

	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("PUBLIC_FALLBACK_BASE_URL", "https://example.com")

	v.SetDefault("EXCHANGE_RATE_API_URL", "https://open.er-api.com/v6/latest/EGP")
	v.SetDefault("RATE_CACHE_TTL", "1h")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "5s")

	v.SetDefault("CHECKOUT_SANITIZE_MODE", SanitizeModeStrict)
	v.SetDefault("CHECKOUT_LANGUAGE", "en")
	v.SetDefault("CHECKOUT_THEME", "light")
	v.SetDefault("CHECKOUT_EMBED_MODE", "external")
	v.SetDefault("CHECKOUT_RATE_LIMIT", "30-M")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.FrontendBaseURL = v.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Admin endpoints will reject every request.")
	}

	cfg.Kashier = KashierConfig{
		MerchantID:  v.GetString("KASHIER_MERCHANT_ID"),
		APIKey:      v.GetString("KASHIER_API_KEY"),
		SecretKey:   v.GetString("KASHIER_SECRET_KEY"),
		TestMode:    v.GetBool("KASHIER_TEST_MODE"),
		APIURL:      v.GetString("KASHIER_API_URL"),
		CheckoutURL: strings.TrimRight(v.GetString("KASHIER_CHECKOUT_URL"), "/"),
	}
	if missing := cfg.Kashier.MissingCredentials(); len(missing) > 0 {
		log.Printf("Warning: Kashier credentials missing (%s). Checkout will return configuration errors.\n", strings.Join(missing, ", "))
	}

	cfg.URLs = URLConfig{
		PublicBaseURL:   v.GetString("PUBLIC_BASE_URL"),
		FallbackBaseURL: v.GetString("PUBLIC_FALLBACK_BASE_URL"),
		IsTestMode:      cfg.Kashier.TestMode,
	}

	cfg.Rates = RatesConfig{
		APIURL:   v.GetString("EXCHANGE_RATE_API_URL"),
		CacheTTL: parseDuration(v, "RATE_CACHE_TTL", time.Hour),
	}
	cfg.HTTPClientTimeout = parseDuration(v, "HTTP_CLIENT_TIMEOUT", 5*time.Second)

	sanitizeMode := strings.ToLower(v.GetString("CHECKOUT_SANITIZE_MODE"))
	if sanitizeMode != SanitizeModeStrict && sanitizeMode != SanitizeModeBasic {
		log.Printf("Warning: Invalid value for CHECKOUT_SANITIZE_MODE ('%s'). Defaulting to %s.\n", sanitizeMode, SanitizeModeStrict)
		sanitizeMode = SanitizeModeStrict
	}
	cfg.Checkout = CheckoutConfig{
		SanitizeMode: sanitizeMode,
		Language:     v.GetString("CHECKOUT_LANGUAGE"),
		Theme:        v.GetString("CHECKOUT_THEME"),
		EmbedMode:    v.GetString("CHECKOUT_EMBED_MODE"),
		RateLimit:    v.GetString("CHECKOUT_RATE_LIMIT"),
	}

	return cfg
}

// parseDuration reads a duration key, falling back to def on invalid input.
func parseDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

// Sanitization modes for free-text customer fields.
const (
	SanitizeModeStrict = "strict"
	SanitizeModeBasic  = "basic"
)
