package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for a run
type Config struct {
	Input         string `json:"input" yaml:"input"`
	Steps         int    `json:"steps" yaml:"steps"`
	Padding       int    `json:"padding" yaml:"padding"`
	ShowBoard     bool   `json:"show_board" yaml:"show_board"`
	RowNumbers    bool   `json:"row_numbers" yaml:"row_numbers"`
	Color         bool   `json:"color" yaml:"color"`
	Verify        bool   `json:"verify" yaml:"verify"`
	UseMemoryPool bool   `json:"use_memory_pool" yaml:"use_memory_pool"`
	Interactive   bool   `json:"interactive" yaml:"interactive"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Input:         "input.txt",
		Steps:         2,
		Padding:       3,
		ShowBoard:     false,
		RowNumbers:    false,
		Color:         false,
		Verify:        false,
		UseMemoryPool: true,
		Interactive:   false,
		LogLevel:      "info",
	}
}

// Validate rejects settings no run can use
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("[Validate] input path is required")
	}
	if c.Steps < 0 {
		return errors.Errorf("[Validate] steps must not be negative, got %d", c.Steps)
	}
	if c.Padding < 0 {
		return errors.Errorf("[Validate] padding must not be negative, got %d", c.Padding)
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal yaml from file: %+v", filename)
		}
	default:
		if err = json.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
		}
	}

	return config, nil
}
