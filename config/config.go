package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the answerit deployment configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Storage  StorageConfig  `yaml:"storage"`
	Ollama   OllamaConfig   `yaml:"ollama"`
	Matching MatchingConfig `yaml:"matching"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec"`
}

// DatasetConfig holds corpus loading settings.
type DatasetConfig struct {
	// Dir is the directory holding the JSON dataset files.
	Dir string `yaml:"dir"`
}

// StorageConfig holds feedback persistence settings.
type StorageConfig struct {
	// Path is the BadgerDB directory for the feedback log and blocklist.
	Path string `yaml:"path"`
}

// OllamaConfig holds generative backend settings.
type OllamaConfig struct {
	// Enabled toggles the generative fallback entirely.
	Enabled          bool    `yaml:"enabled"`
	Host             string  `yaml:"host"`
	Model            string  `yaml:"model"`
	Temperature      float64 `yaml:"temperature"`
	RetryTemperature float64 `yaml:"retry_temperature"`
	TopP             float64 `yaml:"top_p"`
	MaxTokens        int     `yaml:"max_tokens"`
	TimeoutSec       int     `yaml:"timeout_sec"`
}

// MatchingConfig holds scoring and routing settings.
type MatchingConfig struct {
	HighThreshold   float64 `yaml:"high_threshold"`
	MediumThreshold float64 `yaml:"medium_threshold"`
	LowThreshold    float64 `yaml:"low_threshold"`
	BlockSimilarity float64 `yaml:"block_similarity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file, filling unset fields with
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields with production defaults.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeoutSec == 0 {
		c.HTTP.ReadTimeoutSec = 15
	}
	if c.HTTP.WriteTimeoutSec == 0 {
		// Generative answers can take most of a minute.
		c.HTTP.WriteTimeoutSec = 90
	}
	if c.HTTP.ShutdownSec == 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Dataset.Dir == "" {
		c.Dataset.Dir = "./dataset"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "./data/feedback"
	}
	if c.Ollama.Host == "" {
		c.Ollama.Host = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "llama3.2:1b"
	}
	if c.Ollama.Temperature == 0 {
		c.Ollama.Temperature = 0.7
	}
	if c.Ollama.RetryTemperature == 0 {
		c.Ollama.RetryTemperature = 0.9
	}
	if c.Ollama.TopP == 0 {
		c.Ollama.TopP = 0.9
	}
	if c.Ollama.MaxTokens == 0 {
		c.Ollama.MaxTokens = 512
	}
	if c.Ollama.TimeoutSec == 0 {
		c.Ollama.TimeoutSec = 60
	}
	if c.Matching.HighThreshold == 0 {
		c.Matching.HighThreshold = 0.70
	}
	if c.Matching.MediumThreshold == 0 {
		c.Matching.MediumThreshold = 0.40
	}
	if c.Matching.LowThreshold == 0 {
		c.Matching.LowThreshold = 0.25
	}
	if c.Matching.BlockSimilarity == 0 {
		c.Matching.BlockSimilarity = 0.7
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Dataset.Dir == "" {
		return fmt.Errorf("dataset.dir is required")
	}
	if !(c.Matching.HighThreshold > c.Matching.MediumThreshold &&
		c.Matching.MediumThreshold > c.Matching.LowThreshold &&
		c.Matching.LowThreshold > 0) {
		return fmt.Errorf("matching thresholds must satisfy high > medium > low > 0")
	}
	if c.Matching.BlockSimilarity <= 0 || c.Matching.BlockSimilarity > 1 {
		return fmt.Errorf("matching.block_similarity must be in (0, 1]")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

// HTTPReadTimeout returns the request read timeout as a duration.
func (c *Config) HTTPReadTimeout() time.Duration {
	return time.Duration(c.HTTP.ReadTimeoutSec) * time.Second
}

// HTTPWriteTimeout returns the response write timeout as a duration.
func (c *Config) HTTPWriteTimeout() time.Duration {
	return time.Duration(c.HTTP.WriteTimeoutSec) * time.Second
}

// OllamaTimeout returns the generation timeout as a duration.
func (c *Config) OllamaTimeout() time.Duration {
	return time.Duration(c.Ollama.TimeoutSec) * time.Second
}

// ShutdownTimeout returns the HTTP drain timeout as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.HTTP.ShutdownSec) * time.Second
}
