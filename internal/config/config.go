package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the explorer's runtime configuration, read from laplace.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Stream StreamConfig `yaml:"stream"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Metrics         bool          `yaml:"metrics"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
	// Lock enables the distributed session lock. Only meaningful with several replicas.
	Lock bool `yaml:"lock"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StreamConfig struct {
	// Tick is the redraw interval of the SSE frame stream. Parameter
	// changes arriving faster than this are coalesced.
	Tick time.Duration `yaml:"tick"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			Metrics:         true,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "laplace:session:",
			},
		},
		Log:    LogConfig{Level: "info"},
		Stream: StreamConfig{Tick: 16 * time.Millisecond},
	}
}

// Load reads a YAML configuration file over the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that YAML cannot constrain.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("store.backend: unsupported backend %q (want %s or %s)", c.Store.Backend, BackendMemory, BackendRedis)
	}
	if c.Stream.Tick <= 0 {
		return fmt.Errorf("stream.tick: must be positive, got %v", c.Stream.Tick)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port: must not be empty")
	}
	return nil
}
