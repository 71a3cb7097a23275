package integration

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/fuzzy/internal/config"
)

func TestConfigValidateInvalidFixtures(t *testing.T) {
	tests := []struct {
		dir     string
		wantErr string
	}{
		{"bad-precision", "precision"},
		{"negative-margin", "margin_of_error"},
		{"unknown-default", "default_profile"},
		{"bad-array-order", "array_order"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(fixturesDir(), "invalid", tt.dir, "fuzzy.json")

			_, _, err := config.LoadAndValidate(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigFindPrefersJSON(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{"fuzzy.yaml", "fuzzy.json"} {
		if err := writeFile(filepath.Join(dir, name), "{}"); err != nil {
			t.Fatal(err)
		}
	}

	if got := config.Find(dir); filepath.Base(got) != "fuzzy.json" {
		t.Errorf("Find() = %q, want fuzzy.json", got)
	}
}

func TestConfigWarnings(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fuzzy.json")
	content := `{
  "profiles": {"exact": {"margin_of_error": 0, "ulp_tolerance": 0, "colour": "red"}},
  "extra": true
}`
	if err := writeFile(path, content); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if cfg.DefaultProfile != "exact" {
		t.Errorf("DefaultProfile = %q, want exact", cfg.DefaultProfile)
	}

	joined := strings.Join(warnings, "\n")
	for _, want := range []string{`"extra"`, `"colour"`, "zero tolerance"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings %q missing %s", warnings, want)
		}
	}
}
