package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into a freshly allocated T using `env`
// struct tags.
//
// Example:
//
//	type Config struct {
//	    Port     int    `env:"HTTP_PORT" envDefault:"8080"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//	cfg, err := config.Load[Config]()
func Load[T any]() (*T, error) {
	cfg := new(T)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
