package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// BackendCLI runs the git executable.
	BackendCLI = "cli"
	// BackendGoGit reads the repository with go-git.
	BackendGoGit = "go-git"

	configName = ".changelog"
	envPrefix  = "CHANGELOG"
)

type Config struct {
	OutputFile     string        `mapstructure:"output_file"`
	Backend        string        `mapstructure:"backend"`
	GitBinary      string        `mapstructure:"git_binary"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	LockTimeout    time.Duration `mapstructure:"lock_timeout"`
	Verbose        bool          `mapstructure:"verbose"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		OutputFile:  "CHANGELOG.md",
		Backend:     BackendCLI,
		GitBinary:   "git",
		LockTimeout: 30 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("output_file cannot be empty")
	}
	if strings.HasSuffix(c.OutputFile, "/") {
		return fmt.Errorf("output_file must name a file: %s", c.OutputFile)
	}
	switch c.Backend {
	case BackendCLI:
		if strings.TrimSpace(c.GitBinary) == "" {
			return fmt.Errorf("git_binary cannot be empty for the %s backend", BackendCLI)
		}
	case BackendGoGit:
	default:
		return fmt.Errorf("unknown backend %q: expected %s or %s", c.Backend, BackendCLI, BackendGoGit)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout cannot be negative")
	}
	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout cannot be negative")
	}
	return nil
}

// LoadConfig loads configuration from .changelog.yaml in the working directory,
// CHANGELOG_* environment variables and defaults.
func LoadConfig() (*Config, error) {
	return Load(".")
}

// Load loads configuration, looking for the config file in dir.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	// Configure environment variables
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range []string{"output_file", "backend", "git_binary", "command_timeout", "lock_timeout", "verbose"} {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("output_file", defaults.OutputFile)
	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("git_binary", defaults.GitBinary)
	v.SetDefault("command_timeout", defaults.CommandTimeout)
	v.SetDefault("lock_timeout", defaults.LockTimeout)
	v.SetDefault("verbose", defaults.Verbose)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
