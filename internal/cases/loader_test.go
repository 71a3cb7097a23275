package cases

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSuite_ValidSuite_ReturnsCases(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "suite1", "ulp.json"), `{"input": {"op": "ulp", "a": 1}, "output": 2.220446049250313e-16}`)
	writeFile(t, filepath.Join(tmpDir, "suite1", "eq.json"), `{"input": {"op": "eq", "a": 1, "b": 1}, "output": true}`)

	cases, err := LoadSuite(tmpDir, "suite1", DefaultPattern)
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("len(cases) = %d, want 2", len(cases))
	}

	if cases[0].Name != "eq" || cases[1].Name != "ulp" {
		t.Errorf("names = %q, %q, want eq, ulp", cases[0].Name, cases[1].Name)
	}
	for _, c := range cases {
		if c.Suite != "suite1" {
			t.Errorf("Suite = %q, want %q", c.Suite, "suite1")
		}
	}
}

func TestLoadSuite_NonExistentDir_ReturnsError(t *testing.T) {
	if _, err := LoadSuite(t.TempDir(), "nonexistent", DefaultPattern); err == nil {
		t.Error("LoadSuite() expected error for non-existent suite")
	}
}

func TestLoadSuite_InvalidCase_NamesFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken", "bad.json")
	writeFile(t, path, `{"output": 1}`)

	_, err := LoadSuite(tmpDir, "broken", DefaultPattern)
	if err == nil {
		t.Fatal("LoadSuite() expected error for invalid case")
	}
	if want := "(file: " + path + ")"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want to contain %q", err.Error(), want)
	}
}

func TestLoadCase_ValidJSON_ParsesCorrectly(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "one-ulp.json")
	writeFile(t, testFile, `{
		"description": "adjacent doubles",
		"tags": ["ulp", "double"],
		"skip": true,
		"input": {"op": "eq", "a": 1, "b": 1.0000000000000002},
		"output": true
	}`)

	c, err := LoadCase(testFile)
	if err != nil {
		t.Fatalf("LoadCase() error = %v", err)
	}

	if c.Name != "one-ulp" {
		t.Errorf("Name = %q, want %q", c.Name, "one-ulp")
	}
	if c.Path != testFile {
		t.Errorf("Path = %q, want %q", c.Path, testFile)
	}
	if c.Description != "adjacent doubles" {
		t.Errorf("Description = %q", c.Description)
	}
	if !c.Skip {
		t.Error("Skip = false, want true")
	}
	if len(c.Tags) != 2 || c.Tags[0] != "ulp" || c.Tags[1] != "double" {
		t.Errorf("Tags = %v, want [ulp double]", c.Tags)
	}
	if c.Input["op"] != "eq" {
		t.Errorf("Input[op] = %v, want eq", c.Input["op"])
	}
	if c.Output != true {
		t.Errorf("Output = %v, want true", c.Output)
	}
}

func TestLoadCase_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing input", `{"output": 42}`},
		{"missing output", `{"input": {"op": "ulp"}}`},
		{"unknown op", `{"input": {"op": "sum", "a": 1}, "output": 1}`},
		{"input not object", `{"input": [1, 2, 3], "output": 6}`},
		{"invalid JSON", `{invalid json}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "case.json")
			writeFile(t, testFile, tt.content)
			if _, err := LoadCase(testFile); err == nil {
				t.Error("LoadCase() expected error")
			}
		})
	}
}

func TestLoadCase_FileRefToArray_ReturnsError(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "data", "list.json"), `[1, 2, 3]`)
	writeFile(t, filepath.Join(tmpDir, "case.json"), `{"input": {"$file": "data/list.json"}, "output": 6}`)

	_, err := LoadCase(filepath.Join(tmpDir, "case.json"))
	if err == nil {
		t.Fatal("LoadCase() expected error")
	}
	if !strings.Contains(err.Error(), "must be an object") {
		t.Errorf("error = %q, want object error", err.Error())
	}
}

func TestLoadCase_FileNotFound_ReturnsError(t *testing.T) {
	if _, err := LoadCase("/nonexistent/path/case.json"); err == nil {
		t.Error("LoadCase() expected error for missing file")
	}
}

func TestLoadCase_FileRefInSubdirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "data", "operands.json"), `{"op": "cmp", "a": 1, "b": 2}`)
	writeFile(t, filepath.Join(tmpDir, "ref.json"), `{"input": {"$file": "data/operands.json"}, "output": -1}`)

	c, err := LoadCase(filepath.Join(tmpDir, "ref.json"))
	if err != nil {
		t.Fatalf("LoadCase() error = %v", err)
	}
	if c.Input["op"] != "cmp" || c.Input["b"] != float64(2) {
		t.Errorf("Input = %v", c.Input)
	}

	matches, err := findMatches(tmpDir, DefaultPattern)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("findMatches() = %v, want only ref.json", matches)
	}
}

func TestResolveFileRefs_NestedMap_ResolvesRecursively(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "data.json"), `{"value": 42}`)

	input := map[string]interface{}{
		"outer": map[string]interface{}{
			"inner": map[string]interface{}{"$file": "data.json"},
		},
	}

	result, err := resolveFileRefs(input, tmpDir)
	if err != nil {
		t.Fatalf("resolveFileRefs() error = %v", err)
	}

	outer := result.(map[string]interface{})["outer"].(map[string]interface{})
	inner := outer["inner"].(map[string]interface{})
	if inner["value"] != float64(42) {
		t.Errorf("inner[value] = %v, want 42", inner["value"])
	}
}

func TestResolveFileRefs_Array_ResolvesElements(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "item.json"), `"resolved"`)

	input := []interface{}{"static", map[string]interface{}{"$file": "item.json"}}

	result, err := resolveFileRefs(input, tmpDir)
	if err != nil {
		t.Fatalf("resolveFileRefs() error = %v", err)
	}

	arr := result.([]interface{})
	if arr[0] != "static" || arr[1] != "resolved" {
		t.Errorf("result = %v, want [static resolved]", arr)
	}
}

func TestResolveFileRefs_Primitive_ReturnsUnchanged(t *testing.T) {
	for _, input := range []interface{}{"string", float64(42), true, nil} {
		result, err := resolveFileRefs(input, "/tmp")
		if err != nil {
			t.Errorf("resolveFileRefs(%v) error = %v", input, err)
		}
		if result != input {
			t.Errorf("resolveFileRefs(%v) = %v, want unchanged", input, result)
		}
	}
}

func TestLoadFileRef_PathTraversal_ReturnsError(t *testing.T) {
	if _, err := loadFileRef("../escape.json", t.TempDir()); err == nil {
		t.Error("loadFileRef() expected error for path traversal")
	}
}

func TestLoadFileRef_NonJSONFile_ReturnsString(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "data.txt"), "plain text content")

	result, err := loadFileRef("data.txt", tmpDir)
	if err != nil {
		t.Fatalf("loadFileRef() error = %v", err)
	}
	if result != "plain text content" {
		t.Errorf("result = %v, want %q", result, "plain text content")
	}
}

func TestLoadFileRef_FileNotFound_ReturnsError(t *testing.T) {
	if _, err := loadFileRef("nonexistent.json", t.TempDir()); err == nil {
		t.Error("loadFileRef() expected error for missing file")
	}
}

func TestFindMatches_GlobPattern_FindsFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "b.json"), "{}")
	writeFile(t, filepath.Join(tmpDir, "a.json"), "{}")
	writeFile(t, filepath.Join(tmpDir, "readme.txt"), "")
	writeFile(t, filepath.Join(tmpDir, "nested", "c.json"), "{}")

	matches, err := findMatches(tmpDir, DefaultPattern)
	if err != nil {
		t.Fatalf("findMatches() error = %v", err)
	}

	want := []string{filepath.Join(tmpDir, "a.json"), filepath.Join(tmpDir, "b.json")}
	if len(matches) != len(want) {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Errorf("matches[%d] = %q, want %q", i, matches[i], want[i])
		}
	}
}

func TestLoadAllSuites_MultipleSuites_ReturnsAll(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "suite1", "case.json"), `{"input": {"op": "ulp", "a": 1}, "output": 1}`)
	writeFile(t, filepath.Join(tmpDir, "suite2", "case.json"), `{"input": {"op": "ulp", "a": 2}, "output": 2}`)
	writeFile(t, filepath.Join(tmpDir, "readme.txt"), "")
	if err := os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	suites, err := LoadAllSuites(tmpDir, DefaultPattern)
	if err != nil {
		t.Fatalf("LoadAllSuites() error = %v", err)
	}

	if len(suites) != 2 {
		t.Errorf("len(suites) = %d, want 2", len(suites))
	}
	for _, name := range []string{"suite1", "suite2"} {
		if _, ok := suites[name]; !ok {
			t.Errorf("suites missing %q", name)
		}
	}
}

func TestLoadAllSuites_MissingDir_ReturnsError(t *testing.T) {
	if _, err := LoadAllSuites(filepath.Join(t.TempDir(), "missing"), DefaultPattern); err == nil {
		t.Error("LoadAllSuites() expected error for missing directory")
	}
}
