package cli

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/syncgen/syncgen/internal/models"
)

// Environment carries the operator-tunable settings that do not belong in
// the registry: where pipeline state lives and how the external generator is
// launched.
type Environment struct {
	GeneratorBin     string        `env:"SYNCGEN_GENERATOR" envDefault:"openapi-generator"`
	StateDir         string        `env:"SYNCGEN_STATE_DIR" envDefault:".syncgen"`
	GeneratorTimeout time.Duration `env:"SYNCGEN_GENERATOR_TIMEOUT" envDefault:"0"`
}

// LoadEnvironment reads the SYNCGEN_* environment variables.
func LoadEnvironment() (Environment, error) {
	var cfg Environment
	if err := env.Parse(&cfg); err != nil {
		return cfg, models.NewConfigurationError("invalid SYNCGEN_* environment", err)
	}
	return cfg, nil
}
