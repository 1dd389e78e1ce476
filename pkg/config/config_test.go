package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.Batch.MaxSize)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 10000, cfg.Server.MaxTextLength)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
annotator: basic
batch:
  concurrency: 8
server:
  addr: 127.0.0.1:9000
  read_timeout: 5s
llm:
  provider: openai
  timeout: 45s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "basic", cfg.Annotator)
	assert.Equal(t, "human", cfg.Output)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, 50, cfg.Batch.MaxSize)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 150*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 2, cfg.LLM.MaxAttempts)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "log_level: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config file")

	_, err = LoadConfig(writeConfig(t, "llm:\n  timeout: soon\n"))
	assert.ErrorContains(t, err, "invalid llm.timeout format")
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("output: json\n"), 0o644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	addr := ":9999"
	workers := 3
	model := "gpt-4o-mini"

	cfg.MergeWithFlags(Flags{Addr: &addr, Concurrency: &workers, Model: &model})
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Batch.Concurrency)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log_level"},
		{"annotator", func(c *Config) { c.Annotator = "spacy" }, "invalid annotator"},
		{"output", func(c *Config) { c.Output = "xml" }, "invalid output"},
		{"batch size", func(c *Config) { c.Batch.MaxSize = 0 }, "batch.max_size"},
		{"concurrency", func(c *Config) { c.Batch.Concurrency = -1 }, "batch.concurrency"},
		{"addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"text length", func(c *Config) { c.Server.MaxTextLength = 0 }, "server.max_text_length"},
		{"provider", func(c *Config) { c.LLM.Provider = "gemini" }, `invalid llm.provider "gemini", must be one of: claude, openai`},
		{"attempts", func(c *Config) { c.LLM.MaxAttempts = 0 }, "llm.max_attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_Providers(t *testing.T) {
	for _, p := range []string{"", "claude", "openai", "OpenAI"} {
		cfg := DefaultConfig()
		cfg.LLM.Provider = p
		assert.NoError(t, cfg.Validate(), p)
	}
}
