package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the hypercube build parameters a config file or flags can
// set. Flags always win over the config file, which always wins over these
// defaults.
type Config struct {
	K         int     `mapstructure:"k"`
	R         int     `mapstructure:"r"`
	Workers   int     `mapstructure:"workers"`
	Budget    int     `mapstructure:"budget"`
	Mean      float64 `mapstructure:"mean"`
	Deviation float64 `mapstructure:"deviation"`
}

// loadConfig reads configPath (if non-empty) over a set of defaults
// matching hypercube.DefaultOptions' values that have sane CLI defaults.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("k", 20)
	v.SetDefault("r", 4)
	v.SetDefault("workers", 1)
	v.SetDefault("budget", 0)
	v.SetDefault("mean", 0.0)
	v.SetDefault("deviation", 1.0)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("dolphinn: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("dolphinn: parsing config: %w", err)
	}
	return &cfg, nil
}
