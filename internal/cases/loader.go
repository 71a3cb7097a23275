package cases

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/fuzzy/internal/schema"
)

// DefaultPattern selects the case files of a suite.
const DefaultPattern = "*.json"

// LoadSuite loads all cases from a suite directory.
func LoadSuite(dir, suite, pattern string) ([]Case, error) {
	suiteDir := filepath.Join(dir, suite)

	if _, err := os.Stat(suiteDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("suite directory not found: %s", suiteDir)
	}

	matches, err := findMatches(suiteDir, pattern)
	if err != nil {
		return nil, err
	}

	var cases []Case
	for _, path := range matches {
		c, err := LoadCase(path)
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w (file: %s)", suite, err, path)
		}
		c.Suite = suite
		cases = append(cases, *c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases, nil
}

// LoadAllSuites loads cases from every suite directory under dir.
// Suites without matching files are left out.
func LoadAllSuites(dir, pattern string) (map[string][]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases directory: %w", err)
	}

	suites := make(map[string][]Case)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		suite := entry.Name()
		cases, err := LoadSuite(dir, suite, pattern)
		if err != nil {
			return nil, err
		}

		if len(cases) > 0 {
			suites[suite] = cases
		}
	}

	return suites, nil
}

// LoadCase loads a single case from a JSON file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := schema.ValidateCase(data); err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	input, output := raw["input"], raw["output"]
	baseDir := filepath.Dir(path)
	input, err = resolveFileRefs(input, baseDir)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	output, err = resolveFileRefs(output, baseDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	inputMap, ok := input.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("\"input\" must be an object")
	}

	c := &Case{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:   path,
		Input:  inputMap,
		Output: output,
	}
	c.Description, _ = raw["description"].(string)
	c.Skip, _ = raw["skip"].(bool)
	if tags, ok := raw["tags"].([]interface{}); ok {
		for _, tag := range tags {
			if s, ok := tag.(string); ok {
				c.Tags = append(c.Tags, s)
			}
		}
	}
	return c, nil
}

// findMatches returns the files directly inside dir whose names match pattern, sorted.
// Files in subdirectories belong to nested suites and are not included.
func findMatches(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if matched {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(matches)
	return matches, nil
}

// resolveFileRefs recursively replaces {"$file": "name"} objects with the
// contents of the named file.
func resolveFileRefs(value interface{}, baseDir string) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		if fileRef, ok := v["$file"].(string); ok {
			return loadFileRef(fileRef, baseDir)
		}

		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[key] = resolved
		}
		return result, nil

	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[i] = resolved
		}
		return result, nil

	default:
		return value, nil
	}
}

// loadFileRef loads a file referenced by $file. JSON content is decoded,
// anything else is returned as a string.
func loadFileRef(ref, baseDir string) (interface{}, error) {
	if strings.Contains(ref, "..") {
		return nil, fmt.Errorf("$file path contains \"..\": %s", ref)
	}

	path := filepath.Join(baseDir, ref)

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return nil, fmt.Errorf("$file path escapes case directory: %s", ref)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("$file %q: %w", ref, err)
	}

	var jsonValue interface{}
	if err := json.Unmarshal(data, &jsonValue); err == nil {
		return jsonValue, nil
	}
	return string(data), nil
}
