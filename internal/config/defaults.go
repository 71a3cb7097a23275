package config

// Default configuration values.
const (
	DefaultProfileName   = "default"
	DefaultPrecision     = 64
	DefaultMarginOfError = 1e-9
	DefaultULPTolerance  = 4
	DefaultBoundaryScale = 1
	DefaultArrayOrder    = ArrayOrderStrict
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyProfileDefaults(cfg)
	applyComparisonDefaults(cfg)
}

func applyProfileDefaults(cfg *Config) {
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = map[string]Profile{DefaultProfileName: {}}
	}
	if cfg.DefaultProfile == "" {
		cfg.DefaultProfile = DefaultProfileName
		// A single profile is the default regardless of its name
		if len(cfg.Profiles) == 1 {
			for name := range cfg.Profiles {
				cfg.DefaultProfile = name
			}
		}
	}
	for name, p := range cfg.Profiles {
		if p.Precision == 0 {
			p.Precision = DefaultPrecision
		}
		if p.MarginOfError == nil {
			margin := DefaultMarginOfError
			p.MarginOfError = &margin
		}
		if p.ULPTolerance == nil {
			ulps := DefaultULPTolerance
			p.ULPTolerance = &ulps
		}
		if p.BoundaryScale == 0 {
			p.BoundaryScale = DefaultBoundaryScale
		}
		cfg.Profiles[name] = p
	}
}

func applyComparisonDefaults(cfg *Config) {
	if cfg.Comparison == nil {
		cfg.Comparison = &ComparisonConfig{}
	}
	if cfg.Comparison.ArrayOrder == "" {
		cfg.Comparison.ArrayOrder = string(DefaultArrayOrder)
	}
}
