// Package config loads optional headerscan settings from a config file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file name without extension. Any format
	// viper understands (toml, yaml, json) is accepted.
	ConfigFileName = ".headerscan"
	// EnvPrefix prefixes environment overrides, e.g. HEADERSCAN_DEBUG.
	EnvPrefix = "HEADERSCAN"
)

// Config holds settings that can also be given as flags.
type Config struct {
	// Include lists search directories. Relative entries from a config file
	// are relative to that file's directory.
	Include []string `mapstructure:"include"`
	Debug   bool     `mapstructure:"debug"`
	Format  string   `mapstructure:"format"`
	Parser  string   `mapstructure:"parser"`
	Target  string   `mapstructure:"target"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Include: []string{},
		Format:  "list",
		Parser:  "regex",
	}
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath, when set, is the only file read and must exist.
	ConfigFilePath string
	// SearchDir is where ConfigFileName is looked up. Defaults to ".".
	SearchDir string
}

// Load reads configuration and returns it with the path of the file used,
// which is empty when no config file was found.
func Load(opts LoadOptions) (Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("include", defaults.Include)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("parser", defaults.Parser)
	v.SetDefault("target", defaults.Target)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("failed to read config %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		searchDir := opts.SearchDir
		if searchDir == "" {
			searchDir = "."
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(searchDir)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, "", fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to parse config: %w", err)
	}

	used := v.ConfigFileUsed()
	if used != "" {
		cfg.Include = anchorIncludes(cfg.Include, used)
	}

	return cfg, used, nil
}

// anchorIncludes rewrites relative include entries against the directory of
// configFile. A config in the working directory is left as written.
func anchorIncludes(entries []string, configFile string) []string {
	dir, err := filepath.Abs(filepath.Dir(configFile))
	if err != nil {
		return entries
	}
	if wd, err := os.Getwd(); err == nil && wd == dir {
		return entries
	}

	anchored := make([]string, 0, len(entries))
	for _, entry := range entries {
		for _, field := range strings.Fields(entry) {
			if !filepath.IsAbs(filepath.FromSlash(field)) {
				field = filepath.ToSlash(filepath.Join(dir, filepath.FromSlash(field)))
			}
			anchored = append(anchored, field)
		}
	}
	return anchored
}
