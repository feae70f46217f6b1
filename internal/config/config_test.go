package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Empty values count as unset.
	for _, k := range []string{"PORT", "ENV", "STORAGE", "JWT_EXPIRY", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.Storage != StorageMySQL {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageMySQL)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9000")
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageMemory)
	}
	if cfg.JWTExpiry != 90*time.Minute {
		t.Errorf("JWTExpiry = %v, want 90m", cfg.JWTExpiry)
	}
	if cfg.BcryptCost != 4 {
		t.Errorf("BcryptCost = %d, want 4", cfg.BcryptCost)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "production with dev secret",
			env:     map[string]string{"ENV": "production"},
			wantErr: ErrProductionSecret,
		},
		{
			name:    "unknown storage",
			env:     map[string]string{"STORAGE": "mongo"},
			wantErr: ErrUnknownStorage,
		},
		{
			name:    "zero expiry",
			env:     map[string]string{"JWT_EXPIRY": "0s"},
			wantErr: ErrInvalidExpiry,
		},
		{
			name:    "cost too high",
			env:     map[string]string{"BCRYPT_COST": "40"},
			wantErr: ErrInvalidCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProductionWithSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")

	if _, err := Load(); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
}
