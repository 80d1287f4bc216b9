package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pskpp/festival/storage"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort  int
	StoreDriver string
	DatabaseURL string

	JWTSecretKey string
	TokenTTL     time.Duration
	// Один из двух обязателен. Хеш имеет приоритет.
	AdminPasswordHash string
	AdminPassword     string

	CORSAllowedOrigins []string
	SeedFile           string
	SeedOverwrite      bool

	UploadDir     string
	UploadBaseURL string
	R2            storage.CloudflareR2UploaderConfig
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a variable lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(get("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		ServerPort:         port,
		StoreDriver:        strings.ToLower(get("STORE_DRIVER", StoreDriverPostgres)),
		DatabaseURL:        get("DATABASE_URL", ""),
		JWTSecretKey:       get("JWT_SECRET_KEY", ""),
		AdminPasswordHash:  get("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:      getenv("ADMIN_PASSWORD"),
		CORSAllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS", "*")),
		SeedFile:           get("SEED_FILE", ""),
		UploadDir:          get("UPLOAD_DIR", "./uploads"),
		UploadBaseURL:      get("UPLOAD_BASE_URL", ""),
		R2: storage.CloudflareR2UploaderConfig{
			AccountID:       get("R2_ACCOUNT_ID", ""),
			AccessKeyID:     get("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: get("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      get("R2_BUCKET_NAME", ""),
			PublicBaseURL:   get("R2_PUBLIC_BASE_URL", ""),
		},
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
	}

	if ttl := get("TOKEN_TTL", ""); ttl != "" {
		cfg.TokenTTL, err = time.ParseDuration(ttl)
		if err != nil || cfg.TokenTTL <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q", ttl)
		}
	}
	if overwrite := get("SEED_OVERWRITE", ""); overwrite != "" {
		cfg.SeedOverwrite, err = strconv.ParseBool(overwrite)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_OVERWRITE: %w", err)
		}
	}

	// R2 настраивается целиком или не настраивается вовсе.
	if cfg.R2.Enabled() {
		if err := cfg.R2.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.UploadBaseURL == "" {
		cfg.UploadBaseURL = fmt.Sprintf("http://localhost:%d/uploads", port)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
