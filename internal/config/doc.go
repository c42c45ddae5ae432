// Package config provides centralized configuration management for the
// impactsim pipeline. The tool takes no external configuration at all: no
// flags, no environment variables, no config files. Every run uses the fixed
// values from Default, so two invocations in the same directory produce the
// same artifacts.
//
// # Configuration Structure
//
// The main configuration struct:
//
//	type Config struct {
//	    Simulation SimulationConfig // record count, seed, distribution parameters
//	    Logging    LoggingConfig    // level, format, output destination
//	}
//
// All values are validated with go-playground/validator before a run starts,
// so an invalid parameter set fails fast with a CONFIG error instead of
// producing a nonsense dataset.
//
// # Path Management
//
// The package provides centralized path management through the Paths type.
// All artifact paths resolve against the working directory:
//
//	paths, err := config.GetPaths()
//	csvPath := paths.DatasetCSV        // output_images/covid_impact_data.csv
//	logPath := paths.GetLogPath("impactsim.log")
//
// Tests build the same layout under a temporary directory with
// config.NewPaths(t.TempDir()).
package config
