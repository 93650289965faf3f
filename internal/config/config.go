package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DatasetPath   string
	ListenAddr    string
	LogDir        string
	AllowedOrigin string
	ProductLimit  int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	datasetPath := getEnv("DATASET_PATH", "SCMS_Delivery_History_Dataset.csv")
	if !filepath.IsAbs(datasetPath) && exeDir != "" {
		// Resolve relative to the binary unless the file exists in the cwd.
		if _, statErr := os.Stat(datasetPath); statErr != nil {
			candidate := filepath.Join(exeDir, datasetPath)
			if _, statErr := os.Stat(candidate); statErr == nil {
				datasetPath = candidate
			}
		}
	}

	logDir := getEnv("LOGS_FOLDER", "")
	if logDir == "" && exeDir != "" {
		logDir = filepath.Join(exeDir, "logs")
	}

	cfg := &AppConfig{
		DatasetPath:   datasetPath,
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		LogDir:        logDir,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		ProductLimit:  getEnvInt("PRODUCT_LIMIT", 15),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
