package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds the Snowflake connection block of snowbatch.yaml.
// The password is intentionally absent; it comes from SNOWFLAKE_PASSWORD or
// an interactive prompt, never from a file checked into version control.
type ConnectionConfig struct {
	Account   string `yaml:"account"`
	User      string `yaml:"user"`
	Warehouse string `yaml:"warehouse,omitempty"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
	Role      string `yaml:"role,omitempty"`
}

// ProjectConfig is the parsed snowbatch.yaml.
type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Tables     []string         `yaml:"tables"`
	DataDir    string           `yaml:"data_dir"`
	Stage      string           `yaml:"stage,omitempty"`
	OnError    string           `yaml:"on_error,omitempty"`
	Timeout    string           `yaml:"timeout,omitempty"`
}

const ConfigFileName = "snowbatch.yaml"

// Load reads and parses snowbatch.yaml from the given project directory.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
