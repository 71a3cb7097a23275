package config

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
)

// profileNamePattern: lowercase letter first, then lowercase letters, digits, hyphens, underscores.
var profileNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
// It expects defaults to have been applied.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateProfiles(cfg); err != nil {
		return nil, err
	}

	if err := validateComparison(cfg.Comparison); err != nil {
		return nil, err
	}

	for _, name := range sortedKeys(cfg.Profiles) {
		p := cfg.Profiles[name]
		if p.MarginOfError != nil && *p.MarginOfError == 0 && p.ULPTolerance != nil && *p.ULPTolerance == 0 {
			warnings = append(warnings, fmt.Sprintf("profile %q has zero tolerance and only accepts bit-identical values", name))
		}
	}

	return warnings, nil
}

func validateProfiles(cfg *Config) error {
	if _, ok := cfg.Profiles[cfg.DefaultProfile]; !ok {
		return &ValidationError{
			Field:   "default_profile",
			Message: fmt.Sprintf("references undefined profile %q", cfg.DefaultProfile),
		}
	}

	for _, name := range sortedKeys(cfg.Profiles) {
		if err := ValidateProfileName(name); err != nil {
			return err
		}
		if err := validateProfile(name, cfg.Profiles[name]); err != nil {
			return err
		}
	}
	return nil
}

func validateProfile(name string, p Profile) error {
	field := func(f string) string { return fmt.Sprintf("profiles.%s.%s", name, f) }

	if p.Precision != 32 && p.Precision != 64 {
		return &ValidationError{Field: field("precision"), Message: "must be 32 or 64"}
	}
	if p.MarginOfError != nil {
		m := *p.MarginOfError
		if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
			return &ValidationError{Field: field("margin_of_error"), Message: "must be a finite non-negative number"}
		}
	}
	if p.ULPTolerance != nil && *p.ULPTolerance < 0 {
		return &ValidationError{Field: field("ulp_tolerance"), Message: "must be non-negative"}
	}
	if p.BoundaryScale < 1 {
		return &ValidationError{Field: field("boundary_scale"), Message: "must be at least 1"}
	}
	return nil
}

func validateComparison(c *ComparisonConfig) error {
	if c == nil {
		return nil
	}
	switch ArrayOrder(c.ArrayOrder) {
	case ArrayOrderStrict, ArrayOrderUnordered:
		return nil
	}
	return &ValidationError{
		Field:   "comparison.array_order",
		Message: `must be "strict" or "unordered"`,
	}
}

// ValidateProfileName checks if a profile name is valid.
func ValidateProfileName(name string) error {
	if name == "" {
		return &ValidationError{Field: "profile name", Message: "is required"}
	}
	if !profileNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "profiles." + name,
			Message: "profile name must match pattern ^[a-z][a-z0-9_-]*$",
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quote(s string) string {
	return strconv.Quote(s)
}
