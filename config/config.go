// Package config loads cinecheck configuration.
//
// Precedence: defaults, then an optional YAML file, then CINECHECK_*
// environment variables.
//
//	cfg, err := config.NewLoader().WithConfigPath("cinecheck.yaml").Load()
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete cinecheck configuration.
type Config struct {
	LLM LLMConfig `yaml:"llm"`
	Log LogConfig `yaml:"log"`
}

// LLMConfig configures the generation calls.
type LLMConfig struct {
	// Model name, e.g. gemini-2.5-flash
	Model string `yaml:"model"`
	// BaseURL overrides the provider endpoint, mainly for tests
	BaseURL string `yaml:"base_url"`
	// Timeout per generation call
	Timeout time.Duration `yaml:"timeout"`
	// Temperature for sampling, 0 keeps the provider default
	Temperature float32 `yaml:"temperature"`
	// MaxTokens caps completion length, 0 keeps the provider default
	MaxTokens int `yaml:"max_tokens"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is console or json
	Format string `yaml:"format"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 60 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// Loader loads configuration with the defaults → YAML → env precedence.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a Loader with the CINECHECK env prefix.
func NewLoader() *Loader {
	return &Loader{envPrefix: "CINECHECK"}
}

// WithConfigPath sets the YAML file path. An empty path skips file loading.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix overrides the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load resolves the configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", l.configPath, err)
		}
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	if v, ok := l.env("LLM_MODEL"); ok {
		cfg.LLM.Model = v
	}
	if v, ok := l.env("LLM_BASE_URL"); ok {
		cfg.LLM.BaseURL = v
	}
	if v, ok := l.env("LLM_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = d
		}
	}
	if v, ok := l.env("LLM_TEMPERATURE"); ok {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(f)
		}
	}
	if v, ok := l.env("LLM_MAX_TOKENS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = n
		}
	}
	if v, ok := l.env("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := l.env("LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
}

func (l *Loader) env(suffix string) (string, bool) {
	v := os.Getenv(l.envPrefix + "_" + suffix)
	return v, v != ""
}
