package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Last.fm / Libre.fm API key used for the audioscrobbler providers
	APIKey string

	// Transport cache bounds
	CacheSize int
	CacheTTL  time.Duration

	// Timeout for every outbound provider call
	HTTPTimeout time.Duration

	// Path to the sqlite database holding user mappings
	DBPath string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("cache.size", 100)
	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("http.timeout_seconds", 25)
	v.SetDefault("db.path", defaultDBPath())

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("TUNELOG")
	v.AutomaticEnv()

	cfg := &Config{
		APIKey:      v.GetString("lastfm.api_key"),
		CacheSize:   v.GetInt("cache.size"),
		CacheTTL:    time.Duration(v.GetInt("cache.ttl_seconds")) * time.Second,
		HTTPTimeout: time.Duration(v.GetInt("http.timeout_seconds")) * time.Second,
		DBPath:      v.GetString("db.path"),
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	v.Set("lastfm.api_key", c.APIKey)
	v.Set("cache.size", c.CacheSize)
	v.Set("cache.ttl_seconds", int(c.CacheTTL.Seconds()))
	v.Set("http.timeout_seconds", int(c.HTTPTimeout.Seconds()))
	v.Set("db.path", c.DBPath)

	return v.WriteConfigAs(configFile)
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "tunelog")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// defaultDBPath returns the default location of the user-mapping database
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "tunelog.db"
	}
	return filepath.Join(homeDir, ".local", "share", "tunelog", "tunelog.db")
}
