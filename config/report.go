package config

// ReportConfig controls report output.
type ReportConfig struct {
	// File, when set, receives the JSON report in addition to the console summary.
	File string `yaml:"file"`

	// NoColor disables coloured console output.
	NoColor bool `yaml:"no_color"`

	// Progress shows a progress bar on stderr while blocks are compared.
	Progress bool `yaml:"progress"`
}
