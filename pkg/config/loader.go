package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg, a pointer to a struct with `env` tags, from the process
// environment:
//
//	type Config struct {
//	    HTTPPort       int    `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
//	    StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
//	}
func Load(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
