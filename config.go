package ecpps

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// worldConfig holds the process-level knobs for a world instance.
// Configuration can be set via environment variables with the specified
// defaults.
type worldConfig struct {
	// Minimum level for the world logger. The add/remove diagnostics are
	// emitted at debug (index tables) and trace (component payloads).
	LogLevel string `env:"ECPPS_LOG_LEVEL" envDefault:"info"`

	// Write human-readable console output instead of JSON lines.
	LogPretty bool `env:"ECPPS_LOG_PRETTY" envDefault:"false"`

	// Optional address of a statsd agent to receive pass timings. Metrics
	// stay no-op when unset.
	StatsdAddress string `env:"ECPPS_STATSD_ADDRESS"`
}

// loadWorldConfig loads the world configuration from environment variables.
func loadWorldConfig() (worldConfig, error) {
	cfg := worldConfig{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse world config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *worldConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	return nil
}

// logLevel returns the parsed zerolog level. Only call after validate.
func (cfg *worldConfig) logLevel() zerolog.Level {
	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	return lvl
}
