// Package config loads server configuration from an optional YAML file with
// environment variable overrides, so containerized deploys can run without
// any file at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port              int          `yaml:"port"`
	CORSAllowedOrigin string       `yaml:"cors_allowed_origin"`
	Engine            EngineConfig `yaml:"engine"`
	Chat              ChatConfig   `yaml:"chat"`
}

type EngineConfig struct {
	// Path to the ngspice binary; empty means every simulation is mocked.
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// UnmarshalYAML accepts Go duration notation ("5s", "1m") for the timeout.
func (e *EngineConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Path    string `yaml:"path"`
		Timeout string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	e.Path = raw.Path
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid engine timeout %q: %w", raw.Timeout, err)
		}
		e.Timeout = timeout
	}
	return nil
}

type ChatConfig struct {
	Model string `yaml:"model"`
	// The API key only ever comes from the environment.
	APIKey string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Port:              8080,
		CORSAllowedOrigin: "*",
		Engine: EngineConfig{
			Timeout: 10 * time.Second,
		},
		Chat: ChatConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// Load reads the YAML file at path when given, then applies environment
// overrides: PORT, CORS_ALLOWED_ORIGIN, NGSPICE_PATH, SIMULATION_TIMEOUT,
// GEMINI_MODEL, GEMINI_API_KEY.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGIN"); v != "" {
		cfg.CORSAllowedOrigin = v
	}
	if v := os.Getenv("NGSPICE_PATH"); v != "" {
		cfg.Engine.Path = v
	}
	if v := os.Getenv("SIMULATION_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SIMULATION_TIMEOUT %q: %w", v, err)
		}
		cfg.Engine.Timeout = timeout
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Chat.Model = v
	}
	cfg.Chat.APIKey = os.Getenv("GEMINI_API_KEY")

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return cfg, nil
}
