package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tripsee/internal/account"
)

// Config holds resolved CLI configuration.
type Config struct {
	ConfigDir       string
	DBPath          string
	ExportDir       string
	Debug           bool
	SearchLatency   time.Duration
	RegisterLatency time.Duration
}

const defaultSearchLatency = 500 * time.Millisecond

// LoadConfig resolves configuration from .env files, the environment
// (TRIPSEE_*), the config file and finally the explicit flags. An empty
// configFile means ~/.tripsee/config.yaml; a missing file is not an error.
func LoadConfig(configFile, dbFlag string) (*Config, error) {
	// .env values never override variables already set in the environment.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(home, ".tripsee")

	v := viper.New()
	v.SetDefault("db", filepath.Join(configDir, "tripsee.db"))
	v.SetDefault("exports", filepath.Join(configDir, "exports"))
	v.SetDefault("debug", false)
	v.SetDefault("search_latency", defaultSearchLatency)
	v.SetDefault("register_latency", account.DefaultLatency)
	v.SetEnvPrefix("TRIPSEE")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config") // .yaml is implicit
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config := &Config{
		ConfigDir:       configDir,
		DBPath:          v.GetString("db"),
		ExportDir:       v.GetString("exports"),
		Debug:           v.GetBool("debug"),
		SearchLatency:   v.GetDuration("search_latency"),
		RegisterLatency: v.GetDuration("register_latency"),
	}
	if dbFlag != "" {
		config.DBPath = dbFlag
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return config, nil
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}
