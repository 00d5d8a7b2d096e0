// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Session   SessionConfig   `mapstructure:"session"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	GinMode        string `mapstructure:"gin_mode"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
	Debug          bool   `mapstructure:"debug"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// ProviderConfig holds settings for the external mapping provider.
type ProviderConfig struct {
	APIKey          string `mapstructure:"api_key"`
	GeocodeBaseURL  string `mapstructure:"geocode_base_url"`
	DiscoverBaseURL string `mapstructure:"discover_base_url"`
	GeocodeTimeout  int    `mapstructure:"geocode_timeout"`  // milliseconds
	DiscoverTimeout int    `mapstructure:"discover_timeout"` // milliseconds
	GeocodeLimit    int    `mapstructure:"geocode_limit"`
	DiscoverLimit   int    `mapstructure:"discover_limit"`
}

// SessionConfig holds settings for the conversation context store.
type SessionConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
	TTL   int         `mapstructure:"ttl"` // seconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GetTTL returns the session TTL as a duration.
func (s SessionConfig) GetTTL() time.Duration {
	return time.Duration(s.TTL) * time.Second
}

// AssistantConfig holds settings for the chat pipeline.
type AssistantConfig struct {
	MaxResults   int      `mapstructure:"max_results"`
	Categories   []string `mapstructure:"categories"`
	RegistryPath string   `mapstructure:"registry_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
