// Package config loads phrasebot configuration from config.yaml and
// the environment. Environment variables override YAML values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for phrasebot.
type Config struct {
	// BotName is the address prefix the bot answers to and the first
	// path segment of the HTTP dump endpoint.
	BotName string `yaml:"bot_name" env:"PHRASEBOT_NAME" env-default:"hubot"`

	// Server configuration for the phrase dump endpoint.
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// BaseURL overrides the base of "too many tidbits" links. When
	// empty it is derived from the host name and port.
	BaseURL string `yaml:"base_url" env:"HUBOT_URL" env-default:""`

	// DBPath is the brain database location. Empty means
	// ~/.phrasebot/phrases.db.
	DBPath string `yaml:"db_path" env:"PHRASEBOT_DB" env-default:""`
}

// Load reads config.yaml when present, then the environment, and fills
// in derived defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error
	if _, statErr := os.Stat("config.yaml"); statErr == nil {
		err = cleanenv.ReadConfig("config.yaml", cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.BaseURL == "" {
		host, hostErr := os.Hostname()
		if hostErr != nil {
			host = "localhost"
		}
		cfg.BaseURL = "http://" + host + ":" + cfg.Port
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.DBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.DBPath = filepath.Join(home, ".phrasebot", "phrases.db")
	}

	return cfg, nil
}

// ListenAddr returns the bind address for the HTTP server.
func (c *Config) ListenAddr() string {
	return c.BindAddr + ":" + c.Port
}
