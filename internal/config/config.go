package config

import (
	"github.com/go-playground/validator/v10"

	"impactsim/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
}

// SimulationConfig contains the dataset generation parameters
type SimulationConfig struct {
	RecordCount   int `validate:"gt=0"`
	Seed          uint64
	RevenueMean   float64 `validate:"gt=0"`
	RevenueStdDev float64 `validate:"gt=0"`
	RevenueFloor  float64 `validate:"gt=0,ltfield=RevenueMean"`
	DropMin       float64 `validate:"gte=0,lte=1"`
	DropMax       float64 `validate:"gtfield=DropMin,lte=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `validate:"oneof=debug info warn error"`
	Format      string `validate:"oneof=json text"`
	Output      string `validate:"oneof=console file both"`
	FilePath    string `validate:"required"`
	Development bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration against its declared constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.NewConfigError("invalid configuration", err)
	}
	return nil
}

// Default returns the fixed configuration the pipeline runs with.
// There are no external configuration sources: no flags, no environment
// variables, no config files. A run is fully determined by these values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			RecordCount:   DefaultRecordCount,
			Seed:          DefaultSeed,
			RevenueMean:   DefaultRevenueMean,
			RevenueStdDev: DefaultRevenueStdDev,
			RevenueFloor:  DefaultRevenueFloor,
			DropMin:       DefaultDropMin,
			DropMax:       DefaultDropMax,
		},
		Logging: LoggingConfig{
			Level:       DefaultLogLevel,
			Format:      DefaultLogFormat,
			Output:      DefaultLogOutput,
			FilePath:    "logs/impactsim.log",
			Development: false,
		},
	}
}
