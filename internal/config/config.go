package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	Port         int
	Debug        bool
	BackendURL   string
	OTLPEndpoint string
}

// Load reads the process configuration from the environment. A .env file in
// the working directory is applied first when present.
func Load(defaultPort int) Config {
	_ = godotenv.Load()

	return Config{
		Env:          getEnv("ENVIRONMENT", "development"),
		Port:         getEnvInt("PORT", defaultPort),
		Debug:        getEnvBool("DEBUG", false),
		BackendURL:   getEnv("BACKEND_URL", "http://localhost:8086"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true")
	}

	return fallback
}
