package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const devSecret = "dev-secret-change-in-production"

// Storage backends.
const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

var (
	ErrProductionSecret = errors.New("JWT_SECRET must be set in production environment")
	ErrUnknownStorage   = errors.New("STORAGE must be one of: mysql, memory")
	ErrInvalidExpiry    = errors.New("JWT_EXPIRY must be positive")
	ErrInvalidCost      = errors.New("BCRYPT_COST out of range")
)

type Config struct {
	Port        string
	Env         string
	Storage     string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration
	BcryptCost  int
	LogLevel    string
	LogFormat   string
	CORSOrigins []string
}

// Load reads the configuration from the environment. Values from a .env file
// must already be exported (see godotenv in cmd/api).
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORAGE", StorageMySQL)
	v.SetDefault("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/taskdeck?parseTime=true")
	v.SetDefault("JWT_SECRET", devSecret)
	v.SetDefault("JWT_EXPIRY", 24*time.Hour)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := Config{
		Port:        v.GetString("PORT"),
		Env:         v.GetString("ENV"),
		Storage:     strings.ToLower(v.GetString("STORAGE")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTExpiry:   v.GetDuration("JWT_EXPIRY"),
		BcryptCost:  v.GetInt("BCRYPT_COST"),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:   strings.ToLower(v.GetString("LOG_FORMAT")),
		CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Env == "production" && c.JWTSecret == devSecret {
		return ErrProductionSecret
	}
	if c.Storage != StorageMySQL && c.Storage != StorageMemory {
		return fmt.Errorf("%w: got %q", ErrUnknownStorage, c.Storage)
	}
	if c.JWTExpiry <= 0 {
		return ErrInvalidExpiry
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d", ErrInvalidCost, c.BcryptCost)
	}
	return nil
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
