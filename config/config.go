// Package config reads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath    string `env:"DB_PATH" envDefault:"fieldsim.db"`
	LayoutDir string `env:"LAYOUT_DIR" envDefault:"layouts"`
	Seed      uint64 `env:"RNG_SEED" envDefault:"0"` // 0 selects the crypto source
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
