// Package config provides loading and validation of fuzzy.json / fuzzy.yaml comparison profiles.
package config

import "github.com/AndreyAkinshin/fuzzy/pkg/fuzzy"

// Config represents the complete fuzzy configuration file.
type Config struct {
	Schema         string             `json:"$schema,omitempty"`
	DefaultProfile string             `json:"default_profile,omitempty"`
	Profiles       map[string]Profile `json:"profiles,omitempty"`
	Comparison     *ComparisonConfig  `json:"comparison,omitempty"`
}

// Profile is a named set of comparison tolerances.
type Profile struct {
	Precision     int      `json:"precision,omitempty"`       // 32 or 64
	MarginOfError *float64 `json:"margin_of_error,omitempty"` // nil means default
	ULPTolerance  *int     `json:"ulp_tolerance,omitempty"`   // nil means default
	BoundaryScale int      `json:"boundary_scale,omitempty"`
	Hashed        bool     `json:"hashed,omitempty"`
}

// ComparisonConfig configures structural document comparison.
type ComparisonConfig struct {
	ArrayOrder   string `json:"array_order,omitempty"`
	NaNEqualsNaN bool   `json:"nan_equals_nan,omitempty"`
}

// ArrayOrder defines how arrays are compared.
type ArrayOrder string

const (
	ArrayOrderStrict    ArrayOrder = "strict"
	ArrayOrderUnordered ArrayOrder = "unordered"
)

// Tolerance returns the profile's tolerances. Unset fields fall back to defaults.
func (p Profile) Tolerance() fuzzy.Tolerance {
	t := fuzzy.Tolerance{
		MarginOfError: DefaultMarginOfError,
		ULPTolerance:  DefaultULPTolerance,
		BoundaryScale: p.BoundaryScale,
	}
	if p.MarginOfError != nil {
		t.MarginOfError = *p.MarginOfError
	}
	if p.ULPTolerance != nil {
		t.ULPTolerance = *p.ULPTolerance
	}
	return t.Normalize()
}

// Profile returns the named profile, or the default profile when name is empty.
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, &ValidationError{
			Field:   "profile",
			Message: "unknown profile " + quote(name),
		}
	}
	return p, nil
}

// ProfileNames returns the configured profile names in sorted order.
func (c *Config) ProfileNames() []string {
	return sortedKeys(c.Profiles)
}
