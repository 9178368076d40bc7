// Package config loads gateway configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the gateway needs to run.
type Config struct {
	// Object store
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// PublicBaseURL is the base used to build asset URLs. When unset it is
	// derived from AccountID as https://<account>.r2.cloudflarestorage.com.
	PublicBaseURL string
	AccountID     string

	// HTTP
	Port           string
	AllowedOrigins []string

	// AdminToken guards mutating routes. Empty disables the guard.
	AdminToken string

	// DatabaseURL enables the relational image index when set.
	DatabaseURL string
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("R2_REGION", "auto")
	v.SetDefault("PORT", "5000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := Config{
		Endpoint:      v.GetString("R2_ENDPOINT"),
		Region:        v.GetString("R2_REGION"),
		Bucket:        v.GetString("R2_BUCKET_NAME"),
		AccessKey:     v.GetString("R2_ACCESS_KEY_ID"),
		SecretKey:     v.GetString("R2_SECRET_ACCESS_KEY"),
		PublicBaseURL: v.GetString("R2_PUBLIC_URL"),
		AccountID:     v.GetString("R2_ACCOUNT_ID"),
		Port:          v.GetString("PORT"),
		AdminToken:    v.GetString("ADMIN_API_TOKEN"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.Endpoint == "" {
		return cfg, errors.New("R2_ENDPOINT is required")
	}
	if cfg.Bucket == "" {
		return cfg, errors.New("R2_BUCKET_NAME is required")
	}
	if cfg.PublicBaseURL == "" {
		if cfg.AccountID == "" {
			return cfg, errors.New("one of R2_PUBLIC_URL or R2_ACCOUNT_ID is required")
		}
		cfg.PublicBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	return cfg, nil
}
