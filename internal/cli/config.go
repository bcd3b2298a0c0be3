package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/duckbook/internal/book"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyDataDir  = "data_dir"
	cfgKeyPageSize = "page_size"
	cfgKeyLogLevel = "log_level"

	defaultLogLevel = "info"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyPageSize, book.DefaultPageSize)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if v.GetInt(cfgKeyPageSize) <= 0 {
		return nil, fmt.Errorf("read config: %s must be positive, got %d", cfgKeyPageSize, v.GetInt(cfgKeyPageSize))
	}
	return v, nil
}
