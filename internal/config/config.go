package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBConnections int
	SigningKey    string

	SpacesEndpoint string
	SpacesRegion   string
	SpacesKey      string
	SpacesSecret   string
	SpacesBucket   string
}

func Load() *Config {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "sliceoflife"),
		DBPassword:    getEnv("DB_PASSWORD", "sliceoflife_dev_password"),
		DBName:        getEnv("DB_NAME", "sliceoflife"),
		DBConnections: getEnvInt("DB_CONNECTIONS", 10),
		SigningKey:    getEnv("SIGNING_KEY", "dev-secret-change-me"),

		SpacesEndpoint: getEnv("SPACES_ENDPOINT", "sfo3.digitaloceanspaces.com"),
		SpacesRegion:   getEnv("SPACES_REGION", "sfo3"),
		SpacesKey:      getEnv("SPACES_KEY", ""),
		SpacesSecret:   getEnv("SPACES_SECRET", ""),
		SpacesBucket:   getEnv("SPACES_BUCKET", "blob-sliceoflife"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)

	if exists {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}

	return fallback
}
