// Package config loads omadactl configuration from file, environment and
// flags. The omada client itself takes a plain ClientConfig; this package is
// only the loading collaborator around it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the settings for one controller connection.
type Config struct {
	Host      string        `mapstructure:"host"`
	Site      string        `mapstructure:"site"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
	VerifySSL bool          `mapstructure:"verify_ssl"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageSize  int           `mapstructure:"page_size"`
	LogLevel  string        `mapstructure:"log_level"`
}

var configKeys = []string{
	"host", "site", "username", "password",
	"verify_ssl", "timeout", "page_size", "log_level",
}

// Load reads omadactl.yaml (explicit path, current directory, or the user
// config directory), then OMADA_-prefixed environment variables, then the
// command's flags, in rising precedence.
func Load(cmd *cobra.Command, cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("site", "Default")
	v.SetDefault("verify_ssl", true)
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("page_size", 1024)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("omadactl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "omadactl"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("omada")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv alone does not surface env-only keys through Unmarshal;
	// each key needs an explicit binding.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if cmd != nil {
		// Flag names are dashed, config keys underscored; bind each pair
		// explicitly. Viper only takes the flag value when the flag was set.
		for key, name := range map[string]string{
			"host":       "host",
			"site":       "site",
			"username":   "username",
			"password":   "password",
			"verify_ssl": "verify-ssl",
			"log_level":  "log-level",
		} {
			if flag := cmd.Flags().Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate performs basic validation of the configuration.
func (c *Config) Validate() error {
	var problems []string

	if c.Host == "" {
		problems = append(problems, "host cannot be empty")
	}
	if c.Username == "" {
		problems = append(problems, "username cannot be empty")
	}
	if c.Password == "" {
		problems = append(problems, "password cannot be empty")
	}
	if c.Site == "" {
		problems = append(problems, "site cannot be empty")
	}
	if c.PageSize < 0 {
		problems = append(problems, "page_size cannot be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
