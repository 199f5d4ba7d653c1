package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"web"`

	APIURL     string        `env:"API_URL" envDefault:"https://rithm-jeopardy.herokuapp.com/api/"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	NumberOfCategories       int `env:"NUMBER_OF_CATEGORIES" envDefault:"6"`
	NumberOfCluesPerCategory int `env:"NUMBER_OF_CLUES_PER_CATEGORY" envDefault:"5"`
	CategoryPoolSize         int `env:"CATEGORY_POOL_SIZE" envDefault:"100"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.NumberOfCategories < 1 {
		errs = append(errs, fmt.Errorf("NUMBER_OF_CATEGORIES must be positive, got %d", c.NumberOfCategories))
	}
	if c.NumberOfCluesPerCategory < 1 {
		errs = append(errs, fmt.Errorf("NUMBER_OF_CLUES_PER_CATEGORY must be positive, got %d", c.NumberOfCluesPerCategory))
	}
	if c.CategoryPoolSize < c.NumberOfCategories {
		errs = append(errs, fmt.Errorf("CATEGORY_POOL_SIZE (%d) must be at least NUMBER_OF_CATEGORIES (%d)", c.CategoryPoolSize, c.NumberOfCategories))
	}
	if c.APITimeout < 0 {
		errs = append(errs, fmt.Errorf("API_TIMEOUT must not be negative, got %s", c.APITimeout))
	}
	return errors.Join(errs...)
}
