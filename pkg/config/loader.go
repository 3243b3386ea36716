package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	"github.com/utafrali/storefront-api/pkg/validator"
)

// Load parses environment variables into cfg and then checks its `validate`
// tags. cfg must be a pointer to a struct using `env` tags:
//
//	type Config struct {
//	    Port   int    `env:"PORT" envDefault:"8000" validate:"min=1,max=65535"`
//	    Driver string `env:"STORE_DRIVER" envDefault:"mongo" validate:"oneof=mongo memory"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
