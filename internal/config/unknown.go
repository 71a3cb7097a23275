package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// LoadWithWarnings parses JSON configuration data and returns any unknown field warnings.
func LoadWithWarnings(data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	warnings := detectUnknownFields(data)

	return &cfg, warnings, nil
}

// detectUnknownFields compares raw JSON with known struct fields.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Config{}))
	for _, key := range sortedKeys(raw) {
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if profilesRaw, ok := raw["profiles"]; ok {
		warnings = append(warnings, checkProfilesUnknownFields(profilesRaw)...)
	}

	if comparisonRaw, ok := raw["comparison"]; ok {
		known := getJSONFields(reflect.TypeOf(ComparisonConfig{}))
		warnings = append(warnings, unknownKeys(comparisonRaw, known, "in comparison")...)
	}

	return warnings
}

func checkProfilesUnknownFields(data json.RawMessage) []string {
	var warnings []string

	var profiles map[string]json.RawMessage
	if err := json.Unmarshal(data, &profiles); err != nil {
		return []string{"internal: failed to re-parse profiles for unknown field detection"}
	}

	known := getJSONFields(reflect.TypeOf(Profile{}))
	for _, name := range sortedKeys(profiles) {
		warnings = append(warnings, unknownKeys(profiles[name], known, fmt.Sprintf("in profile %q", name))...)
	}

	return warnings
}

func unknownKeys(data json.RawMessage, known map[string]bool, where string) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	var warnings []string
	for _, key := range sortedKeys(fields) {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q %s (ignored)", key, where))
		}
	}
	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
