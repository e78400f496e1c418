package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	IDRX     IDRXConfig
	Security SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds wallet-session token validation configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// IDRXConfig holds the fiat-rail provider configuration. APIKey and
// APISecret are the application-wide credentials used for calls made before
// a user holds their own provider credentials.
type IDRXConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// SecurityConfig holds security encryption keys
type SecurityConfig struct {
	CredentialEncryptionKey string
}

// devCredentialEncryptionKey is a publicly known key and must never encrypt
// real provider secrets; it is substituted only for development boots.
const devCredentialEncryptionKey = "0000000000000000000000000000000000000000000000000000000000000000"

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "idrxgate"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		IDRX: IDRXConfig{
			BaseURL:   getEnv("IDRX_API_BASE_URL", "https://idrx.co"),
			APIKey:    getEnv("IDRX_API_KEY", ""),
			APISecret: getEnv("IDRX_API_SECRET", ""),
			Timeout:   getEnvAsDuration("IDRX_API_TIMEOUT", 30*time.Second),
		},
		Security: SecurityConfig{
			CredentialEncryptionKey: getEnv("CREDENTIAL_ENCRYPTION_KEY", ""), // 32-bytes hex string
		},
	}

	// Outside development an unset key stays empty so startup fails instead
	// of silently encrypting provider secrets with a known key.
	if cfg.Security.CredentialEncryptionKey == "" && cfg.Server.Env == "development" {
		cfg.Security.CredentialEncryptionKey = devCredentialEncryptionKey
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
