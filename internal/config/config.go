package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Classifier struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"classifier"`

	Database struct {
		Path string `yaml:"path"` // SQLite path for the diagnosis history
	} `yaml:"database"`

	Catalog struct {
		Path string `yaml:"path"` // Optional YAML catalog; empty uses the built-in one
	} `yaml:"catalog"`

	Pipeline struct {
		MinConfidence  float64 `yaml:"min_confidence"`
		SpeciesPenalty float64 `yaml:"species_penalty"`
		TopN           int     `yaml:"top_n"`
	} `yaml:"pipeline"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = "8003"
	}

	if config.Classifier.URL == "" {
		config.Classifier.URL = "http://localhost:8500"
	}

	if config.Classifier.TimeoutSeconds == 0 {
		config.Classifier.TimeoutSeconds = 30
	}

	if config.Database.Path == "" {
		config.Database.Path = "./data/diagnosis_history.db"
	}

	if config.Pipeline.MinConfidence == 0 {
		config.Pipeline.MinConfidence = 0.10
	}

	if config.Pipeline.SpeciesPenalty == 0 {
		config.Pipeline.SpeciesPenalty = 0.05
	}

	if config.Pipeline.TopN == 0 {
		config.Pipeline.TopN = 3
	}

	// Expand environment variables in external endpoints and paths
	config.Classifier.URL = os.ExpandEnv(config.Classifier.URL)
	config.Database.Path = os.ExpandEnv(config.Database.Path)
	config.Catalog.Path = os.ExpandEnv(config.Catalog.Path)

	return config, nil
}
