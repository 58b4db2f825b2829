package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Policy   PolicyConfig
	Advisor  AdvisorConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port   string
	Host   string
	Addr   string // Combined host:port for convenience
	APIKey string // X-API-Key value for the API routes; empty disables the check
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path          string
	EncryptionKey string // base64 fernet key; empty disables value encryption
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PolicyConfig holds the portfolio policy thresholds.
type PolicyConfig struct {
	BaseCurrency           string
	ConcentrationThreshold float64
	IlliquidCeiling        float64
	RebalanceThreshold     float64
	Benchmarks             []string
}

// AdvisorConfig holds AI advisor configuration.
type AdvisorConfig struct {
	GeminiAPIKey string
	Model        string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:   getEnv("SERVER_PORT", "5001"),
			Host:   getEnv("SERVER_HOST", "localhost"),
			APIKey: getEnv("API_KEY", ""),
		},
		Database: DatabaseConfig{
			Path:          getEnv("DB_PATH", "./data/wealth_os.db"),
			EncryptionKey: getEnv("VALUE_ENCRYPTION_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Policy: PolicyConfig{
			BaseCurrency:           getEnv("BASE_CURRENCY", "CAD"),
			ConcentrationThreshold: getEnvFloat("CONCENTRATION_THRESHOLD", 0.25),
			IlliquidCeiling:        getEnvFloat("ILLIQUID_CEILING", 0.50),
			RebalanceThreshold:     getEnvFloat("REBALANCE_THRESHOLD", 0.05),
			Benchmarks:             []string{"^GSPC", "^GSPTSE"},
		},
		Advisor: AdvisorConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
