package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the generation parameters. Values come from the optional
// config file, falling back to the defaults below.
type Config struct {
	OutputDir     string `mapstructure:"output_dir"`
	Width         int    `mapstructure:"width"`
	Height        int    `mapstructure:"height"`
	NumImages     int    `mapstructure:"num_images"`
	NumDuplicates int    `mapstructure:"num_duplicates"`
}

const (
	DefaultOutputDir     = "generated_images"
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultNumImages     = 1000
	DefaultNumDuplicates = 200
)

// LoadConfig reads configFile, or imgcorpus.toml from the user config dir
// when configFile is empty. A missing default file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to find user config dir: %w", err)
		}
		v.SetConfigName("imgcorpus")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join(configDir, "imgcorpus"))
	}

	// Set defaults:
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("width", DefaultWidth)
	v.SetDefault("height", DefaultHeight)
	v.SetDefault("num_images", DefaultNumImages)
	v.SetDefault("num_duplicates", DefaultNumDuplicates)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
