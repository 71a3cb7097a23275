// Package cli provides command-line interface functionality for fuzzy.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/fuzzy/internal/errors"
	"github.com/AndreyAkinshin/fuzzy/internal/output"
)

// Version is set at build time.
var Version = "dev"

// out is the shared output writer for CLI commands.
var out = output.New()

// commandInfo describes a command for help and shell completion.
type commandInfo struct {
	name        string
	usage       string
	description string
}

// commands lists the built-in commands in help order.
var commands = []commandInfo{
	{"eq", "eq <a> <b>", "Report whether two values are fuzzy-equal"},
	{"cmp", "cmp <a> <b>", "Fuzzy three-way comparison (-1, 0, 1)"},
	{"ulp", "ulp <x>", "Unit in the last place of a value"},
	{"dist", "dist <a> <b>", "Distance in ULPs between values of the same sign"},
	{"bits", "bits <x>", "Show sign, exponent, mantissa and bytes"},
	{"bucket", "bucket <x>", "Show hash boundary, bucket and hash"},
	{"diff", "diff <expected> <actual>", "Compare two JSON or YAML documents"},
	{"check", "check <dir> [suite...]", "Run reference case suites"},
	{"config", "config [validate|profiles]", "Show or validate the configuration"},
	{"completion", "completion <shell>", "Generate shell completion (bash, zsh, fish)"},
	{"version", "version", "Show version information"},
	{"help", "help", "Show this help"},
}

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("fuzzy %s", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	defer out.SetQuiet(false)

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "eq":
		return cmdEq(cmdArgs, opts)
	case "cmp":
		return cmdCmp(cmdArgs, opts)
	case "ulp":
		return cmdULP(cmdArgs, opts)
	case "dist":
		return cmdDist(cmdArgs, opts)
	case "bits":
		return cmdBits(cmdArgs, opts)
	case "bucket":
		return cmdBucket(cmdArgs, opts)
	case "diff":
		return cmdDiff(cmdArgs, opts)
	case "check":
		return cmdCheck(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs, opts)
	case "completion":
		return cmdCompletion(cmdArgs)
	case "help":
		printUsage()
		return 0
	case "version":
		out.Println("fuzzy %s", Version)
		return 0
	default:
		out.ErrorPrefix("unknown command %q (run 'fuzzy help' for usage)", cmd)
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags. Nil pointers mean the flag was not given.
type GlobalOptions struct {
	Quiet      bool
	ConfigPath string
	Profile    string
	Precision  *int
	Margin     *float64
	ULPs       *int
	Scale      *int
	Hashed     bool
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Flags may appear anywhere, so operands such as -1.5 are passed through
// untouched, and everything after -- is treated as operands.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "-q", "--quiet":
			opts.Quiet = true
			i++
			continue
		case "--hashed":
			opts.Hashed = true
			i++
			continue
		case "--config", "--profile", "--precision", "--margin", "--ulps", "--scale":
			if !hasValue {
				if i+1 >= len(args) {
					return nil, nil, fmt.Errorf("%s requires a value", name)
				}
				value = args[i+1]
				i++
			}
			i++
			if err := opts.set(name, value); err != nil {
				return nil, nil, err
			}
			continue
		}

		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		remaining = append(remaining, arg)
		i++
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	out.SetQuiet(opts.Quiet)

	return opts, remaining, nil
}

func (o *GlobalOptions) set(name, value string) error {
	switch name {
	case "--config":
		o.ConfigPath = value
	case "--profile":
		o.Profile = value
	case "--precision":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid --precision value %q\n  valid values: 32, 64", value)
		}
		o.Precision = &n
	case "--margin":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid --margin value %q: expected a number", value)
		}
		o.Margin = &f
	case "--ulps":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid --ulps value %q: expected an integer", value)
		}
		o.ULPs = &n
	case "--scale":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid --scale value %q: expected an integer", value)
		}
		o.Scale = &n
	}
	return nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Precision != nil && *opts.Precision != 32 && *opts.Precision != 64 {
		return fmt.Errorf("invalid --precision value %d\n  valid values: 32, 64", *opts.Precision)
	}
	if opts.Scale != nil && *opts.Scale < 1 {
		return fmt.Errorf("--scale must be at least 1, got %d", *opts.Scale)
	}
	return nil
}

// Help text alignment widths for consistent formatting.
const (
	helpCommandWidth = 26
	helpFlagWidth    = 18
)

func printUsage() {
	out.HelpTitle("fuzzy - tolerance-based floating point comparison")

	out.HelpSection("Usage:")
	out.HelpUsage("fuzzy [flags] <command> [args]")

	out.HelpSection("Commands:")
	for _, c := range commands {
		out.HelpCommand(c.usage, c.description, helpCommandWidth)
	}

	printGlobalFlags()

	out.HelpSection("Examples:")
	out.HelpExample("fuzzy eq 0.3 0.30000000000000004", "Equal within the default tolerance")
	out.HelpExample("fuzzy eq --margin 0 --ulps 1 1 1.0000000000000002", "Equal within one ULP")
	out.HelpExample("fuzzy --precision 32 bits -0.5", "Inspect a float32 bit pattern")
	out.HelpExample("fuzzy --profile strict diff expected.json actual.yaml", "Compare documents")
	out.Println("")
}

func printGlobalFlags() {
	out.HelpSection("Global Flags:")
	out.HelpFlag("-q, --quiet", "Minimal output (results and errors only)", helpFlagWidth)
	out.HelpFlag("--config=<path>", "Configuration file (fuzzy.json or fuzzy.yaml)", helpFlagWidth)
	out.HelpFlag("--profile=<name>", "Comparison profile from the configuration", helpFlagWidth)
	out.HelpFlag("--precision=<bits>", "Floating point width: 32 or 64", helpFlagWidth)
	out.HelpFlag("--margin=<x>", "Absolute margin of error", helpFlagWidth)
	out.HelpFlag("--ulps=<n>", "Tolerance in units in the last place", helpFlagWidth)
	out.HelpFlag("--scale=<n>", "Boundary scale for hashed comparison", helpFlagWidth)
	out.HelpFlag("--hashed", "Use hash-compatible equality", helpFlagWidth)
	out.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
	out.HelpFlag("--version", "Show version", helpFlagWidth)

	out.HelpSection("Environment:")
	out.HelpEnvVar("FUZZY_CONFIG=<path>", "Configuration file used when --config is not given", 20)
}
