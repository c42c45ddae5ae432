package config

// Application constants - all hardcoded values for the impactsim pipeline
const (
	// Application Info
	AppName    = "impactsim"
	AppVersion = "1.0.0"

	// Simulation Defaults
	DefaultRecordCount   = 1000
	DefaultSeed          = 42
	DefaultRevenueMean   = 500.0
	DefaultRevenueStdDev = 150.0
	DefaultRevenueFloor  = 100.0
	DefaultDropMin       = 0.3
	DefaultDropMax       = 1.0

	// Output Layout (relative to the working directory)
	OutputDirName = "output_images"
	LogsDirName   = "logs"

	// Artifact File Names
	DatasetFileName   = "covid_impact_data.csv"
	HistogramFileName = "hist_decline_percent.png"
	BoxplotFileName   = "boxplot_decline_by_sector.png"
	BarplotFileName   = "barplot_avg_decline_by_sector.png"
	ScatterFileName   = "scatter_pre_vs_post_revenue.png"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "file"
	LogFileName      = "impactsim.log"
)
