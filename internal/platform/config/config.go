package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	ModelPath   string
	Redis       RedisConfig

	// BootstrapUsername/BootstrapPassword configure a single fixed identity
	// for deployments without a credential table (development, smoke tests).
	// When the database holds credentials these stay empty.
	BootstrapUsername string
	BootstrapPassword string

	ShutdownTimeout time.Duration
}

// RedisConfig captures the optional Redis connection used by the auth
// lockout store. An empty URL disables Redis and falls back to memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ATTRISK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	modelPath := os.Getenv("MODEL_PATH")
	if modelPath == "" {
		modelPath = "model/model.json"
	}

	return Server{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ModelPath:         modelPath,
		BootstrapUsername: os.Getenv("API_USERNAME"),
		BootstrapPassword: os.Getenv("API_PASSWORD"),
		ShutdownTimeout:   10 * time.Second,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
