package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/rubiojr/msilog/pkg/log"
)

//go:embed config.toml.sample
var configTemplate string

type Config struct {
	Log     LogConfig     `toml:"log"`
	Plugins PluginsConfig `toml:"plugins"`
}

type LogConfig struct {
	// Level is the threshold for categories without an override.
	Level  log.Level `toml:"level"`
	Format string    `toml:"format"`
	// Output is "stderr", "stdout" or a file path.
	Output     string               `toml:"output"`
	Categories map[string]log.Level `toml:"categories,omitempty"`
}

type PluginsConfig struct {
	// Enabled lists the microservices the harness may call. Empty enables all.
	Enabled []string `toml:"enabled"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      log.LevelInfo,
			Format:     string(log.FormatJSON),
			Output:     "stderr",
			Categories: make(map[string]log.Level),
		},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := GetDefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.Log.Format == "" {
		config.Log.Format = string(log.FormatJSON)
	}

	if config.Log.Output == "" {
		config.Log.Output = "stderr"
	}

	if config.Log.Categories == nil {
		config.Log.Categories = make(map[string]log.Level)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if !c.Log.Level.Valid() {
		return fmt.Errorf("invalid log level %d", c.Log.Level)
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	for name, level := range c.Log.Categories {
		if name == "" {
			return fmt.Errorf("empty log category name")
		}
		if !level.Valid() {
			return fmt.Errorf("invalid log level %d for category %s", level, name)
		}
	}
	for _, name := range c.Plugins.Enabled {
		if name == "" {
			return fmt.Errorf("empty plugin name")
		}
	}
	return nil
}

// PluginEnabled reports whether the harness may call the named microservice.
func (c *Config) PluginEnabled(name string) bool {
	return len(c.Plugins.Enabled) == 0 || slices.Contains(c.Plugins.Enabled, name)
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// GetConfigDir returns the configuration directory for msilog
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	msilogConfigDir := filepath.Join(configDir, "msilog")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(msilogConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", msilogConfigDir, err)
	}

	return msilogConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
