package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aryannaik/advocate-directory/internal/seed"
	"github.com/aryannaik/advocate-directory/internal/store"
)

type config struct {
	Port        string
	StoreDriver string
	DataDir     string
	DatabaseURL string
	BatchSize   int
	APIURL      string
	LogLevel    string
}

// loadConfig reads .env (if present) and the environment. Invalid numbers
// fall back to defaults; the returned warnings are logged once a logger exists.
func loadConfig() (config, []string) {
	_ = godotenv.Load()

	var warnings []string
	cfg := config{
		Port:        envOrDefault("PORT", "8990"),
		StoreDriver: envOrDefault("STORE_DRIVER", store.DriverSQLite),
		DataDir:     envOrDefault("DATA_DIR", "data"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BatchSize:   seed.DefaultBatchSize,
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
	}
	cfg.APIURL = envOrDefault("API_URL", "http://localhost:"+cfg.Port)

	if v := os.Getenv("SEED_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchSize = n
		} else {
			warnings = append(warnings, "ignoring invalid SEED_BATCH_SIZE "+strconv.Quote(v))
		}
	}

	return cfg, warnings
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c config) storeConfig() store.Config {
	return store.Config{
		Driver:      c.StoreDriver,
		DataDir:     c.DataDir,
		DatabaseURL: c.DatabaseURL,
	}
}

func logConfig(logger *zap.Logger, cfg config, warnings []string) {
	for _, w := range warnings {
		logger.Warn(w)
	}
	logger.Debug("Configuration loaded",
		zap.String("store", cfg.StoreDriver),
		zap.String("dataDir", cfg.DataDir),
		zap.Int("batchSize", cfg.BatchSize))
}
