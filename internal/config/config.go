package config

import (
	"os"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// report config
	REPORT_PROFILE_PATH string
	REPORT_OUTPUT_DIR   string
	// http config
	APP_PORT string
	// logger config
	LOG_FILE_PATH string
}

// LoadEnvConfig loads the process configuration from the environment. A .env
// file is optional; explicit environment variables win either way.
func LoadEnvConfig() error {
	// Missing .env is fine, the environment may be set externally.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		REPORT_PROFILE_PATH: getEnvString("REPORT_PROFILE_PATH", "report_profile.yaml"),
		REPORT_OUTPUT_DIR:   getEnvString("REPORT_OUTPUT_DIR", "reports"),
		APP_PORT:            getEnvString("APP_PORT", "8080"),
		LOG_FILE_PATH:       getEnvString("LOG_FILE_PATH", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
