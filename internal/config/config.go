package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rah-0/launchpad/internal/storage"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "launchpad.cfg.json"

// Load reads configuration from the JSON file in configDir, if there is one, and sets
// default values. Every key can be overridden by a LAUNCHPAD_ environment variable,
// with dots replaced by underscores (LAUNCHPAD_HTTP_PORT).
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("http.port", 8088)
	viper.SetDefault("seedFile", "")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.sqlite.path", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "launchpad")

	viper.SetEnvPrefix("LAUNCHPAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetStorageConfig assembles the storage backend settings.
func GetStorageConfig() storage.Config {
	return storage.Config{
		Type:       viper.GetString("storage.type"),
		SqlitePath: viper.GetString("storage.sqlite.path"),
		Postgres: storage.PostgresConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}
