package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr       string
	AdminToken string

	// PostgresURL enables the durable transaction and audit stores when
	// set; empty keeps everything in memory.
	PostgresURL string

	Redis RedisConfig
}

// RedisConfig configures the optional resolver cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ResolverCacheTTL bounds how long resolved name lookups may be served
// from cache; alias updates must become visible within this window.
var ResolverCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("BOOKKEEPER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	adminToken := os.Getenv("BOOKKEEPER_ADMIN_TOKEN")
	if adminToken == "" {
		// Development default, override in production.
		adminToken = "dev-admin-token"
	}

	return Server{
		Addr:        addr,
		AdminToken:  adminToken,
		PostgresURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}
