/*
Package config manages TOML config for symserve.
*/
package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/bastiangx/symserve/internal/utils"
	"github.com/charmbracelet/log"
)

const appDirName = "symserve"

// MaxResultsLimit bounds server.max_results; result ranks are uint16.
const MaxResultsLimit = math.MaxUint16

// Config holds the entire config structure
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Provider ProviderConfig `toml:"provider"`
	Server   ServerConfig   `toml:"server"`
	CLI      CliConfig      `toml:"cli"`
}

// CatalogConfig selects the symbol catalog and how group names collate.
// An empty Path means the bundled catalog.
type CatalogConfig struct {
	Path   string `toml:"path"`
	Locale string `toml:"locale"`
}

// ProviderConfig picks the provider kind served to the host.
type ProviderConfig struct {
	Kind string `toml:"kind"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxResults   int `toml:"max_results"`
	MaxFilterLen int `toml:"max_filter_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultGroup string `toml:"default_group"`
	DefaultLimit int    `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appDirName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appDirName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/symserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:   "",
			Locale: "en",
		},
		Provider: ProviderConfig{
			Kind: "unicode",
		},
		Server: ServerConfig{
			MaxResults:   256,
			MaxFilterLen: 64,
		},
		CLI: CliConfig{
			DefaultGroup: "All",
			DefaultLimit: 24,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config, err = tryPartialParse(configPath)
		if err != nil {
			return nil, err
		}
	}
	config.clampLimits()
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find and falls back to
// defaults for the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "catalog"); ok {
		extractCatalogConfig(section, &config.Catalog)
	}
	if section, ok := utils.ExtractSection(tempConfig, "provider"); ok {
		if val, ok := utils.ExtractString(section, "kind"); ok {
			config.Provider.Kind = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractCatalogConfig(data map[string]any, catalog *CatalogConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		catalog.Path = val
	}
	if val, ok := utils.ExtractString(data, "locale"); ok {
		catalog.Locale = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		server.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "max_filter_len"); ok {
		server.MaxFilterLen = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "default_group"); ok {
		cli.DefaultGroup = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// clampLimits replaces out of range server limits.
func (c *Config) clampLimits() {
	defaults := DefaultConfig().Server
	if c.Server.MaxResults < 1 {
		log.Warnf("server.max_results %d is not positive, using %d", c.Server.MaxResults, defaults.MaxResults)
		c.Server.MaxResults = defaults.MaxResults
	} else if c.Server.MaxResults > MaxResultsLimit {
		log.Warnf("server.max_results %d exceeds %d, capping", c.Server.MaxResults, MaxResultsLimit)
		c.Server.MaxResults = MaxResultsLimit
	}
	if c.Server.MaxFilterLen < 1 {
		log.Warnf("server.max_filter_len %d is not positive, using %d", c.Server.MaxFilterLen, defaults.MaxFilterLen)
		c.Server.MaxFilterLen = defaults.MaxFilterLen
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server limits and saves to file. Nil arguments keep the
// current value.
func (c *Config) Update(configPath string, maxResults, maxFilterLen *int) error {
	if maxResults != nil {
		c.Server.MaxResults = *maxResults
	}
	if maxFilterLen != nil {
		c.Server.MaxFilterLen = *maxFilterLen
	}
	c.clampLimits()
	return SaveConfig(c, configPath)
}
