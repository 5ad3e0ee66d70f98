package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the service together.
type Config struct {
	Port             string
	MongoURI         string
	DBName           string
	JWTSecret        string
	TokenTTL         time.Duration
	UrgencyThreshold time.Duration
	RefreshInterval  time.Duration
}

// LoadConfig reads .env (if present) and the environment. Missing optional
// values get workable defaults; a missing JWT secret is fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:           getEnv("DB_NAME", "sadhana_dashboard"),
		JWTSecret:        secret,
		TokenTTL:         getDuration("TOKEN_TTL", 24*time.Hour),
		UrgencyThreshold: getDuration("URGENCY_THRESHOLD", 2*time.Hour),
		RefreshInterval:  getDuration("REFRESH_INTERVAL", time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
