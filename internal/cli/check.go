package cli

import (
	"maps"
	"slices"

	"github.com/AndreyAkinshin/fuzzy/internal/cases"
	"github.com/AndreyAkinshin/fuzzy/internal/errors"
)

// cmdCheck runs reference case suites against the comparison engine.
// Case inputs that leave out precision or tolerances use the active profile.
func cmdCheck(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printCheckUsage()
		return 0
	}
	s, err := loadSettings(opts)
	for _, w := range s.Warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return fail(err)
	}
	if len(args) == 0 {
		return fail(errors.Usagef("check", "expected a cases directory"))
	}

	dir := args[0]
	suites, err := loadSuites(dir, args[1:])
	if err != nil {
		return fail(errors.CommandError("check", err))
	}
	if len(suites) == 0 {
		return fail(errors.Usagef("check", "no case suites found in %s", dir))
	}

	defaults := cases.Defaults{Precision: s.Precision, Tolerance: s.Tolerance}
	var passed, failed, skipped int
	for _, name := range slices.Sorted(maps.Keys(suites)) {
		sr := cases.RunSuite(name, suites[name], defaults)
		passed += sr.Passed
		failed += sr.Failed
		skipped += sr.Skipped

		out.Section(name)
		for _, r := range sr.Results {
			switch {
			case r.Skipped:
				out.Info("  skip  %s", r.Case.Name)
			case r.Error != nil:
				out.Difference(name+"/"+r.Case.Name, r.Error.Error())
			case r.Passed:
				out.Info("  ok    %s", r.Case.Name)
			default:
				out.Difference(name+"/"+r.Case.Name, r.Diff)
			}
		}
	}

	out.Println("")
	out.Verdict(failed == 0, "%d passed, %d failed, %d skipped", passed, failed, skipped)
	if failed > 0 {
		return errors.ExitMismatch
	}
	return 0
}

// loadSuites loads the named suites of dir, or all of them when names is empty.
func loadSuites(dir string, names []string) (map[string][]cases.Case, error) {
	if len(names) == 0 {
		return cases.LoadAllSuites(dir, cases.DefaultPattern)
	}
	suites := make(map[string][]cases.Case, len(names))
	for _, name := range names {
		cs, err := cases.LoadSuite(dir, name, cases.DefaultPattern)
		if err != nil {
			return nil, err
		}
		suites[name] = cs
	}
	return suites, nil
}

func printCheckUsage() {
	out.HelpTitle("fuzzy check - run reference case suites")

	out.HelpSection("Usage:")
	out.HelpUsage("fuzzy [flags] check <dir> [suite...]")
	out.Println("")
	out.Println("  Every subdirectory of <dir> is a suite of JSON case files:")
	out.Println(`    {"input": {"op": "eq", "a": 1, "b": 1.0000000001}, "output": true}`)
	out.Println("  Operations: eq, cmp, ulp, dist, bits, boundary, same_boundary, hashed_eq.")
	out.Println("  Inputs may set precision, margin_of_error, ulp_tolerance and boundary_scale;")
	out.Println("  otherwise the active profile applies. Exits with 3 when a case fails.")

	printGlobalFlags()

	out.HelpSection("Examples:")
	out.HelpExample("fuzzy check test/fixtures/cases", "Run every suite")
	out.HelpExample("fuzzy -q check test/fixtures/cases ulp bits", "Run two suites, report failures only")
	out.Println("")
}
