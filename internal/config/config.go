// Package config loads gateway settings from a YAML file, an optional .env
// file and the environment, in that order of increasing precedence.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pokedex-api/internal/clients/funtranslations"
	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/logging"
)

// Config holds all gateway settings
type Config struct {
	Server         ServerConfig   `yaml:"server"`
	PokeAPI        UpstreamConfig `yaml:"poke_api"`
	TranslationAPI UpstreamConfig `yaml:"translation_api"`
	Logging        LoggingConfig  `yaml:"logging"`
}

// ServerConfig controls the inbound listeners
type ServerConfig struct {
	Port int `yaml:"port"`
	// GRPCHealthPort enables the gRPC health service when non-zero
	GRPCHealthPort  int           `yaml:"grpc_health_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// UpstreamConfig points at one upstream API
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig controls the shared logger
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Default returns the settings used when nothing else is configured
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			ShutdownTimeout: 30 * time.Second,
		},
		PokeAPI: UpstreamConfig{
			BaseURL: pokeapi.DefaultBaseURL,
			Timeout: pokeapi.DefaultHTTPTimeout,
		},
		TranslationAPI: UpstreamConfig{
			BaseURL: funtranslations.DefaultBaseURL,
			Timeout: funtranslations.DefaultHTTPTimeout,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path on top of the defaults, then applies the environment.
// A missing file at path is not an error. envFiles are loaded with godotenv
// before the environment is read; without any, a .env in the working
// directory is used if present.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse config %s", path)
			}
		}
	}

	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to load env file")
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	vb := errors.NewValidationBuilder()

	envInt("PORT", &c.Server.Port, vb)
	envInt("GRPC_HEALTH_PORT", &c.Server.GRPCHealthPort, vb)
	envString("POKEAPI_BASE_URL", &c.PokeAPI.BaseURL)
	envDuration("POKEAPI_TIMEOUT", &c.PokeAPI.Timeout, vb)
	envString("TRANSLATION_API_BASE_URL", &c.TranslationAPI.BaseURL)
	envDuration("TRANSLATION_API_TIMEOUT", &c.TranslationAPI.Timeout, vb)
	envString("LOG_LEVEL", &c.Logging.Level)
	envString("LOG_FILE", &c.Logging.File)

	return vb.Build()
}

// Validate checks every setting
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", c.Server.Port, 1, 65535, vb)
	if c.Server.GRPCHealthPort != 0 {
		errors.ValidateRange("server.grpc_health_port", c.Server.GRPCHealthPort, 1, 65535, vb)
		if c.Server.GRPCHealthPort == c.Server.Port {
			vb.Field("server.grpc_health_port", "must differ from server.port")
		}
	}
	errors.ValidatePositiveDuration("server.shutdown_timeout", c.Server.ShutdownTimeout, vb)
	errors.ValidateURL("poke_api.base_url", c.PokeAPI.BaseURL, vb)
	errors.ValidatePositiveDuration("poke_api.timeout", c.PokeAPI.Timeout, vb)
	errors.ValidateURL("translation_api.base_url", c.TranslationAPI.BaseURL, vb)
	errors.ValidatePositiveDuration("translation_api.timeout", c.TranslationAPI.Timeout, vb)
	errors.ValidateEnum("logging.level", c.Logging.Level, logging.Levels, vb)

	return vb.Build()
}

func envString(key string, dst *string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func envInt(key string, dst *int, vb *errors.ValidationBuilder) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		vb.Fieldf(key, "must be an integer, got %q", value)
		return
	}
	*dst = n
}

func envDuration(key string, dst *time.Duration, vb *errors.ValidationBuilder) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		vb.Fieldf(key, "must be a duration such as 15s, got %q", value)
		return
	}
	*dst = d
}
