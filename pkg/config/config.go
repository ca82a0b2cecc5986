package config

import (
	"os"
	"strconv"
	"strings"
)

// ServerConfig holds the HTTP listen settings for a service.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// ComputeConfig describes how the dispatcher reaches the compute-unit service.
// FallbackMode forces the local deterministic provider regardless of the
// startup reachability probe.
type ComputeConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
	FallbackMode bool   `yaml:"fallback_mode"`
}

// CORSConfig lists the origins allowed to call the front door.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StoreConfig selects the task store backend: memory (default), redis, postgres.
type StoreConfig struct {
	Backend string `yaml:"backend"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MQConfig holds RabbitMQ settings. An empty URL disables event publishing.
type MQConfig struct {
	URL string `yaml:"url"`
}

// OverrideServerFromEnv applies SERVER_PORT on top of the file config.
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
}

// OverrideComputeFromEnv applies COMPUTE_* variables on top of the file config.
func OverrideComputeFromEnv(cfg *ComputeConfig) {
	if endpoint := os.Getenv("COMPUTE_ENDPOINT"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if region := os.Getenv("COMPUTE_REGION"); region != "" {
		cfg.Region = region
	}
	if timeout := os.Getenv("COMPUTE_TIMEOUT_SECS"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			cfg.TimeoutSecs = t
		}
	}
	if mode := os.Getenv("COMPUTE_FALLBACK_MODE"); mode != "" {
		if b, err := strconv.ParseBool(mode); err == nil {
			cfg.FallbackMode = b
		}
	}
}

// OverrideCORSFromEnv applies CORS_ALLOWED_ORIGINS (comma separated).
func OverrideCORSFromEnv(cfg *CORSConfig) {
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, p)
			}
		}
	}
}

// OverrideStoreFromEnv applies STORE_BACKEND on top of the file config.
func OverrideStoreFromEnv(cfg *StoreConfig) {
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		cfg.Backend = backend
	}
}

// OverrideDBFromEnv applies DB_* variables on top of the file config.
func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// OverrideRedisFromEnv applies REDIS_* variables on top of the file config.
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// OverrideMQFromEnv applies MQ_URL on top of the file config.
func OverrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.URL = url
	}
}
