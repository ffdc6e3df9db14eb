// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and GRIDLENS_* env vars.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SourcePath locates the CSV file holding the plant dataset.
	SourcePath string `koanf:"source_path"`

	// NameField and StateField name the source columns carrying the plant
	// identifier and the two-letter state code.
	NameField  string `koanf:"name_field"`
	StateField string `koanf:"state_field"`

	// Metrics lists the numeric source columns that may be queried. Columns
	// whose name contains "percent" are parsed as percentages and stored as
	// fractions.
	Metrics []string `koanf:"metrics"`

	// DefaultMetric is used when a request omits the metric parameter.
	DefaultMetric string `koanf:"default_metric"`

	// States is the fixed set of valid two-letter state codes.
	States []string `koanf:"states"`

	// MaxTopLimit caps GET /plants/top?limit.
	MaxTopLimit int `koanf:"max_top_limit"`
}

// defaultStates covers the 50 states plus DC and Puerto Rico, matching the
// coverage of the eGRID plant inventory.
var defaultStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "PR",
	"RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV",
	"WI", "WY",
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		Addr:       ":8080",
		SourcePath: "data/plants.csv",
		NameField:  "plant_name",
		StateField: "state",
		Metrics: []string{
			"annual_net_generation_mwh",
			"nameplate_capacity_mw",
			"capacity_factor_percent",
			"annual_co2_emissions_tons",
		},
		DefaultMetric: "annual_net_generation_mwh",
		States:        append([]string(nil), defaultStates...),
		MaxTopLimit:   100,
	}
}
