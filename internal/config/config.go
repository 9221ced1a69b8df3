package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the Rijksmuseum API root for English content
	DefaultBaseURL = "https://www.rijksmuseum.nl/api/en"

	// DefaultAPIKey is the public demo key the collection API accepts
	DefaultAPIKey = "9pufSer3"

	// EnvPrefix prefixes environment overrides, e.g. RIJKS_API_KEY
	EnvPrefix = "RIJKS"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds collection API configuration
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Key     string `mapstructure:"key"`
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"` // Quiet period before a typed query runs
}

// StorageConfig holds favorites persistence
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file; empty keeps favorites in memory
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowInspector bool `mapstructure:"show_inspector"` // Split list/detail layout with auto-select
}

// ViewerConfig holds the external image viewer
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default handler
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Key:     DefaultAPIKey,
		},
		Search: SearchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Storage: StorageConfig{
			Path: filepath.Join(dataDir(), "rijks.db"),
		},
		UI: UIConfig{
			ShowInspector: true,
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  filepath.Join(dataDir(), "rijks.log"),
			Level: "INFO",
		},
	}
}

// dataDir returns the per-user data directory for the current OS
func dataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "rijks")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "rijks")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "rijks")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "rijks")
	}
}

func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Defaults double as the key set AutomaticEnv consults during Unmarshal
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ui.show_inspector", cfg.UI.ShowInspector)
	v.SetDefault("viewer.command", cfg.Viewer.Command)
	v.SetDefault("viewer.args", cfg.Viewer.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment. An empty
// configFile searches the default config directory and the working
// directory; a missing file there is not an error.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in dir, or the default config
// directory when dir is empty. Returns the written path.
func SaveConfig(cfg *Config, dir string) (string, error) {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.key", cfg.API.Key)
	v.Set("search.debounce", cfg.Search.Debounce.String())
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("ui.show_inspector", cfg.UI.ShowInspector)
	v.Set("viewer.command", cfg.Viewer.Command)
	v.Set("viewer.args", cfg.Viewer.Args)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

// IsConfigured returns true if the API base URL and key are set
func (c *Config) IsConfigured() bool {
	return c.API.BaseURL != "" && c.API.Key != ""
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
