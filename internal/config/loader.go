package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	zlog "github.com/rs/zerolog/log"
)

const (
	// FileEnv names the optional YAML config file.
	FileEnv = "CATALOG_CONFIG"

	devEnvFile = ".env.dev"
)

// envPrefixes lists the environment variables the loader looks at. Anything
// else in the process environment is ignored.
var envPrefixes = []string{"GIN_", "TZ", "HTTP_", "SHUTDOWN_", "LOG_", "DB_", "METRICS_"}

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. the YAML file named by CATALOG_CONFIG, if set
//  3. environment variables, after .env.dev has been loaded in debug mode
//
// Empty environment variables count as unset.
func Load() (*Config, error) {
	if getenv("GIN_MODE", "debug") == "debug" {
		loadDevEnv()
	}

	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" || !hasKnownPrefix(key) {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if !increasing(cfg.MetricsBuckets) {
		return nil, fmt.Errorf("invalid config: metrics_buckets must be strictly increasing, got %v", cfg.MetricsBuckets)
	}

	return &cfg, nil
}

func increasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}

func hasKnownPrefix(key string) bool {
	for _, p := range envPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// loadDevEnv loads the nearest .env.dev walking up from the working
// directory. Values already present in the environment win.
func loadDevEnv() {
	path, err := findDevEnv()
	if err != nil {
		return
	}

	if err := godotenv.Load(path); err != nil {
		zlog.Warn().Err(err).Str("path", path).Msg("could not load dev env file")
	}
}

func findDevEnv() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, devEnvFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(devEnvFile + " not found in any parent directory")
		}
		dir = parent
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
