package config

import (
	"log"
	"os"
	"strings"
)

// Config holds all runtime configuration. Values are read once at startup
// and never mutated afterwards; every component receives the struct (or a
// field of it) by value.
type Config struct {
	Env      string // application environment (dev, prod)
	Port     string // HTTP port to listen on
	LogLevel string // slog level (debug, info, warn, error)

	DBUser string // store username
	DBPass string // store password (optional)
	DBHost string // store host
	DBPort string // store port
	DBName string // store database name

	AuthServerURL string // base URL of the external auth service
	CDNBaseURL    string // base URL prefixed to uploaded file paths
	UploadDir     string // local root the file store writes under
	ViewsDir      string // template directory
	ViewExt       string // template file extension, e.g. ".hbs"

	PaymentBaseURL   string // payment provider endpoint
	PaymentAPIKey    string
	PaymentSecretKey string
	SecretKey        string // key for sealing stored card references

	// FrontEnd carries every FE_-prefixed environment variable, keyed
	// without the prefix. Exposed verbatim to the view layer.
	FrontEnd map[string]string
}

// Load reads configuration from environment variables. Required variables
// are enforced by must(); missing values abort startup.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		AuthServerURL:    must("AUTHSERVER"),
		CDNBaseURL:       must("FE_CDN_LINK"),
		UploadDir:        getenv("UPLOAD_DIR", "uploads"),
		ViewsDir:         getenv("VIEWS_DIR", "views"),
		ViewExt:          getenv("VIEW_EXT", ".html"),
		PaymentBaseURL:   getenv("PAYMENT_BASE_URL", ""),
		PaymentAPIKey:    os.Getenv("PAYMENT_API_KEY"),
		PaymentSecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
		SecretKey:        os.Getenv("SECRET_KEY"),
		FrontEnd:         FrontEndParams("FE"),
	}
}

// FrontEndParams collects every environment variable starting with
// prefix+"_" into a map keyed by the bare name. Built once at startup;
// callers must not mutate it.
func FrontEndParams(prefix string) map[string]string {
	p := prefix + "_"
	out := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, p) {
			continue
		}
		out[strings.TrimPrefix(k, p)] = v
	}
	return out
}

// must retrieves a required environment variable or aborts.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
