package config

import (
	"errors"
	"math"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func validConfig() *Config {
	cfg := &Config{
		Profiles: map[string]Profile{
			"default": {Precision: 64, MarginOfError: ptr(1e-9), ULPTolerance: ptr(4), BoundaryScale: 1},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	warnings, err := Validate(validConfig())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{
			name:   "undefined default profile",
			modify: func(c *Config) { c.DefaultProfile = "other" },
			field:  "default_profile",
		},
		{
			name: "bad precision",
			modify: func(c *Config) {
				p := c.Profiles["default"]
				p.Precision = 16
				c.Profiles["default"] = p
			},
			field: "profiles.default.precision",
		},
		{
			name: "negative margin",
			modify: func(c *Config) {
				p := c.Profiles["default"]
				p.MarginOfError = ptr(-1.0)
				c.Profiles["default"] = p
			},
			field: "profiles.default.margin_of_error",
		},
		{
			name: "infinite margin",
			modify: func(c *Config) {
				p := c.Profiles["default"]
				p.MarginOfError = ptr(math.Inf(1))
				c.Profiles["default"] = p
			},
			field: "profiles.default.margin_of_error",
		},
		{
			name: "negative ulps",
			modify: func(c *Config) {
				p := c.Profiles["default"]
				p.ULPTolerance = ptr(-2)
				c.Profiles["default"] = p
			},
			field: "profiles.default.ulp_tolerance",
		},
		{
			name: "zero scale",
			modify: func(c *Config) {
				p := c.Profiles["default"]
				p.BoundaryScale = 0
				c.Profiles["default"] = p
			},
			field: "profiles.default.boundary_scale",
		},
		{
			name: "bad profile name",
			modify: func(c *Config) {
				c.Profiles["Bad Name"] = c.Profiles["default"]
			},
			field: "profiles.Bad Name",
		},
		{
			name:   "bad array order",
			modify: func(c *Config) { c.Comparison.ArrayOrder = "sorted" },
			field:  "comparison.array_order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.modify(cfg)

			_, err := Validate(cfg)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestValidate_ZeroToleranceWarning(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Profiles["exact"] = Profile{Precision: 32, MarginOfError: ptr(0.0), ULPTolerance: ptr(0), BoundaryScale: 1}

	warnings, err := Validate(cfg)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", warnings)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Field: "profiles.x.precision", Message: "must be 32 or 64"}
	if got := err.Error(); got != "profiles.x.precision: must be 32 or 64" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidateProfileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"default", false},
		{"f32_strict", false},
		{"loose-2", false},
		{"", true},
		{"2fast", true},
		{"Upper", true},
		{"with space", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfileName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProfileName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	if _, err := Validate(cfg); err != nil {
		t.Fatalf("Validate(Default()) error = %v", err)
	}
	if names := cfg.ProfileNames(); len(names) != 1 || names[0] != DefaultProfileName {
		t.Errorf("ProfileNames() = %v", names)
	}
}
