package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
	"github.com/Protocol-Lattice/agri-advisor/src/translate"
)

// DefaultPath is read when no --config flag is given. A missing file is fine.
const DefaultPath = "advisor.yaml"

// Config holds all advisor configuration.
type Config struct {
	// Fixed dataset file loaded whenever a file is uploaded.
	DatasetPath string `yaml:"dataset_path"`

	Translator TranslatorConfig `yaml:"translator"`
	Logging    LoggingConfig    `yaml:"logging"`
	MCP        MCPConfig        `yaml:"mcp"`
}

// TranslatorConfig selects and tunes the translation provider.
type TranslatorConfig struct {
	Provider string `yaml:"provider"` // google, gemini, utcp, none
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
	Model    string `yaml:"model"`

	// UTCP provider settings.
	UTCPProviders string `yaml:"utcp_providers"`
	UTCPTool      string `yaml:"utcp_tool"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // used by the TUI; other commands log to stderr
}

// MCPConfig configures the MCP tool server.
type MCPConfig struct {
	Transport string `yaml:"transport"` // stdio, http
	Addr      string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DatasetPath: dataset.DefaultSourceFile,
		Translator: TranslatorConfig{
			Provider: translate.ProviderGoogle,
			Timeout:  "15s",
			Model:    "gemini-2.5-flash",
			UTCPTool: translate.DefaultUTCPTool,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "advisor.log",
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Addr:      ":8090",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if it
// exists), then .env and environment overrides. An explicitly named file that
// does not exist is an error; the default path may be absent.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ADVISOR_DATASET"); v != "" {
		c.DatasetPath = v
	}
	if v := os.Getenv("ADVISOR_TRANSLATOR"); v != "" {
		c.Translator.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("ADVISOR_TRANSLATE_URL"); v != "" {
		c.Translator.BaseURL = v
	}
	if v := os.Getenv("ADVISOR_UTCP_PROVIDERS"); v != "" {
		c.Translator.UTCPProviders = v
	}
	if v := os.Getenv("ADVISOR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ADVISOR_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// Validate rejects unknown providers, transports and malformed durations.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatasetPath) == "" {
		return fmt.Errorf("dataset_path must not be empty")
	}
	known := false
	for _, p := range translate.Providers {
		if c.Translator.Provider == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown translator provider %q (want one of %s)",
			c.Translator.Provider, strings.Join(translate.Providers, ", "))
	}
	if _, err := c.Translator.TimeoutDuration(); err != nil {
		return err
	}
	switch c.MCP.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown mcp transport %q", c.MCP.Transport)
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty means zero (provider default).
func (t TranslatorConfig) TimeoutDuration() (time.Duration, error) {
	if t.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil {
		return 0, fmt.Errorf("translator timeout %q: %w", t.Timeout, err)
	}
	return d, nil
}
