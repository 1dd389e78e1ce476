// Package config loads reqcheck settings from a YAML file and command-line
// flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/helmcode/reqcheck/pkg/llm"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = ".reqcheck.yaml"

// BatchConfig bounds batch analysis.
type BatchConfig struct {
	MaxSize     int `yaml:"max_size"`
	Concurrency int `yaml:"concurrency"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxTextLength   int           `yaml:"max_text_length"`
	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	ShutdownTimeout time.Duration `yaml:"-"`
}

// LLMConfig selects the language model used by interrogate and optimize.
// API keys are read from the environment only.
type LLMConfig struct {
	Provider     string        `yaml:"provider"`
	Model        string        `yaml:"model"`
	BaseURL      string        `yaml:"base_url"`
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"-"`
	Timeout      time.Duration `yaml:"-"`
}

// Config represents reqcheck configuration.
type Config struct {
	LogLevel  string       `yaml:"log_level"`
	Annotator string       `yaml:"annotator"`
	Output    string       `yaml:"output"`
	Batch     BatchConfig  `yaml:"batch"`
	Server    ServerConfig `yaml:"server"`
	LLM       LLMConfig    `yaml:"llm"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		Annotator: "auto",
		Output:    "human",
		Batch: BatchConfig{
			MaxSize:     50,
			Concurrency: 0, // one worker per CPU
		},
		Server: ServerConfig{
			Addr:            ":8000",
			MaxTextLength:   10000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    150 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			MaxAttempts:  2,
			InitialDelay: time.Second,
			Timeout:      120 * time.Second,
		},
	}
}

// LoadConfig loads configuration from path on top of the defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// durations are written as strings such as "30s"
	type yamlDurations struct {
		Server struct {
			ReadTimeout     string `yaml:"read_timeout"`
			WriteTimeout    string `yaml:"write_timeout"`
			ShutdownTimeout string `yaml:"shutdown_timeout"`
		} `yaml:"server"`
		LLM struct {
			InitialDelay string `yaml:"initial_delay"`
			Timeout      string `yaml:"timeout"`
		} `yaml:"llm"`
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	var d yamlDurations
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"server.read_timeout", d.Server.ReadTimeout, &cfg.Server.ReadTimeout},
		{"server.write_timeout", d.Server.WriteTimeout, &cfg.Server.WriteTimeout},
		{"server.shutdown_timeout", d.Server.ShutdownTimeout, &cfg.Server.ShutdownTimeout},
		{"llm.initial_delay", d.LLM.InitialDelay, &cfg.LLM.InitialDelay},
		{"llm.timeout", d.LLM.Timeout, &cfg.LLM.Timeout},
	}
	for _, f := range durations {
		if f.value == "" {
			continue
		}
		v, err := time.ParseDuration(f.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s format %q: %w", f.name, f.value, err)
		}
		*f.dst = v
	}

	return cfg, nil
}

// LoadConfigFromDir loads DefaultFileName from dir.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultFileName))
}

// Flags carries command-line overrides. Nil fields leave the configuration
// untouched.
type Flags struct {
	LogLevel    *string
	Annotator   *string
	Output      *string
	Addr        *string
	Concurrency *int
	Provider    *string
	Model       *string
}

// MergeWithFlags applies flag values, which take precedence over the file.
func (c *Config) MergeWithFlags(f Flags) {
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.Annotator != nil {
		c.Annotator = *f.Annotator
	}
	if f.Output != nil {
		c.Output = *f.Output
	}
	if f.Addr != nil {
		c.Server.Addr = *f.Addr
	}
	if f.Concurrency != nil {
		c.Batch.Concurrency = *f.Concurrency
	}
	if f.Provider != nil {
		c.LLM.Provider = *f.Provider
	}
	if f.Model != nil {
		c.LLM.Model = *f.Model
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	switch c.Annotator {
	case "auto", "prose", "basic":
	default:
		return fmt.Errorf("invalid annotator %q, must be one of: auto, prose, basic", c.Annotator)
	}

	switch c.Output {
	case "human", "json", "yaml":
	default:
		return fmt.Errorf("invalid output %q, must be one of: human, json, yaml", c.Output)
	}

	if c.Batch.MaxSize <= 0 {
		return fmt.Errorf("batch.max_size must be > 0, got %d", c.Batch.MaxSize)
	}
	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("batch.concurrency must be >= 0, got %d", c.Batch.Concurrency)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.MaxTextLength <= 0 {
		return fmt.Errorf("server.max_text_length must be > 0, got %d", c.Server.MaxTextLength)
	}

	if c.LLM.Provider != "" && !llm.IsProvider(c.LLM.Provider) {
		return fmt.Errorf("invalid llm.provider %q, must be one of: %s", c.LLM.Provider, llm.ProviderList())
	}
	if c.LLM.MaxAttempts <= 0 {
		return fmt.Errorf("llm.max_attempts must be > 0, got %d", c.LLM.MaxAttempts)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must be >= 0, got %v", c.LLM.Timeout)
	}

	return nil
}
