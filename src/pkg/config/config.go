package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon settings. AdminSecret gates the mutating
// endpoints; an empty value disables the gate.
type Config struct {
	Port        int    `yaml:"port"`
	DataDir     string `yaml:"dataDir"`
	AdminSecret string `yaml:"adminSecret"`
}

func getDefaultConfig() *Config {
	return &Config{
		Port:    8080,
		DataDir: "./data",
	}
}

// Load reads a yaml config file; values merge over the defaults.
func Load(path string) (*Config, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read config: %w", readErr)
	}

	config := getDefaultConfig()
	if unmarshalErr := yaml.Unmarshal(data, config); unmarshalErr != nil {
		return nil, fmt.Errorf("wrong config file format: %w", unmarshalErr)
	}

	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("failed to read config: invalid port %d", config.Port)
	}
	if config.DataDir == "" {
		return nil, fmt.Errorf("failed to read config: dataDir is not set")
	}
	return config, nil
}

// CatalogPath is the well-known location of the serialized catalog.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "pdfs-list.json")
}

// BlobDir is the directory holding the raw document blobs.
func (c *Config) BlobDir() string {
	return filepath.Join(c.DataDir, "pdfs")
}
