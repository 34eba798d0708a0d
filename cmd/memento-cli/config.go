package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config controls where the CLI connects. Precedence: flags, then an
// explicitly given TOML config file, then the environment.
type Config struct {
	Addr    string        `env:"MEMENTO_ADDR, default=localhost:11211"`
	Timeout time.Duration `env:"MEMENTO_TIMEOUT, default=5s"`
	Debug   bool          `env:"MEMENTO_DEBUG"`
}

type fileConfig struct {
	Addr    string `toml:"addr"`
	Timeout string `toml:"timeout"`
	Debug   bool   `toml:"debug"`
}

// LoadConfig resolves the configuration from .env.local, the environment,
// and an optional TOML file.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	config := Config{}
	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, err
	}

	if path != "" {
		if err := applyFile(&config, path); err != nil {
			return nil, err
		}
	}

	return &config, nil
}

func applyFile(config *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("addr") {
		if addr := strings.TrimSpace(raw.Addr); addr != "" {
			config.Addr = addr
		}
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		config.Timeout = d
	}

	if meta.IsDefined("debug") {
		config.Debug = raw.Debug
	}

	return nil
}
