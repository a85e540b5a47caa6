package activitydb

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// Backend kinds the selector can bind.
const (
	// BackendAuto probes MongoDB and falls back to the in-memory store.
	BackendAuto = "auto"
	// BackendMongo probes MongoDB, falling back like auto. Named
	// explicitly so deployments can state their intent.
	BackendMongo = "mongo"
	// BackendRedis probes Redis instead of MongoDB.
	BackendRedis = "redis"
	// BackendMemory skips probing and binds the in-memory store.
	BackendMemory = "memory"
)

// Config holds everything the backend selector needs. It is constructed
// once at process start and handed to Open; there is no process-wide
// mutable state.
type Config struct {
	// Backend selects which real database to probe: auto, mongo, redis,
	// or memory.
	Backend string `env:"ACTIVITYDB_BACKEND" envDefault:"auto"`

	// MongoURI is the connection string probed by the auto and mongo
	// backends.
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/"`

	// MongoDatabase is the database holding the activities and teachers
	// collections.
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"mergington_high"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// ProbeTimeout bounds the startup reachability probe so startup can
	// never hang on an unreachable database.
	ProbeTimeout time.Duration `env:"ACTIVITYDB_PROBE_TIMEOUT" envDefault:"1s"`
}

// DefaultConfig returns the configuration used when no environment is
// set: probe a local MongoDB for one second, else run in memory.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendAuto,
		MongoURI:      "mongodb://localhost:27017/",
		MongoDatabase: "mergington_high",
		RedisAddr:     "localhost:6379",
		ProbeTimeout:  time.Second,
	}
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks if the Config can bind a backend
func (c Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendMongo, BackendRedis, BackendMemory:
	default:
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Backend",
			"value":  c.Backend,
			"reason": "unknown backend kind",
		})
	}

	if c.ProbeTimeout <= 0 {
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "ProbeTimeout",
			"value":  c.ProbeTimeout,
			"reason": "must be positive",
		})
	}

	switch c.Backend {
	case BackendAuto, BackendMongo:
		if c.MongoURI == "" {
			return WithContext(ErrInvalidConfig, map[string]interface{}{
				"field":  "MongoURI",
				"reason": "required for mongo-probing backends",
			})
		}
		if c.MongoDatabase == "" {
			return WithContext(ErrInvalidConfig, map[string]interface{}{
				"field":  "MongoDatabase",
				"reason": "required for mongo-probing backends",
			})
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return WithContext(ErrInvalidConfig, map[string]interface{}{
				"field":  "RedisAddr",
				"reason": "required for the redis backend",
			})
		}
	}

	return nil
}

// redisOptions builds client options for the redis backend.
func (c Config) redisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
