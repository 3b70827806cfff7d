// Package config loads runtime settings for the wizard0x65 commands.
//
// Values are layered: built-in defaults, then an optional YAML file, then a
// .env file, then WIZARD_* environment variables. Command-line flags are
// applied on top by each command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds every setting shared by the CLI and the servers.
type Config struct {
	DecksFile string `yaml:"decks_file" env:"WIZARD_DECKS_FILE"`

	// TCPPort is the battle server port used by `wizard host` and `wizard join`.
	TCPPort string `yaml:"tcp_port" env:"WIZARD_TCP_PORT"`
	WebPort int    `yaml:"web_port" env:"WIZARD_WEB_PORT"`

	// MaxSteps is the watchdog for non-interactive runs.
	MaxSteps int `yaml:"max_steps" env:"WIZARD_MAX_STEPS"`

	// AutoplayInterval paces step frames streamed to web clients.
	AutoplayInterval time.Duration `yaml:"autoplay_interval" env:"WIZARD_AUTOPLAY_INTERVAL"`

	LogLevel string `yaml:"log_level" env:"WIZARD_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DecksFile:        "decks.yaml",
		TCPPort:          "9000",
		WebPort:          8080,
		MaxSteps:         1000,
		AutoplayInterval: 500 * time.Millisecond,
		LogLevel:         "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty or the file does not exist), a .env file in the working directory,
// and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}
	if c.AutoplayInterval < 0 {
		return fmt.Errorf("autoplay_interval must not be negative, got %s", c.AutoplayInterval)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Logger returns a logrus logger at the configured level, writing to stderr.
func (c Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
