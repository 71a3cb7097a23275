package cli

import (
	stderrors "errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/fuzzy/internal/compare"
	"github.com/AndreyAkinshin/fuzzy/internal/config"
	"github.com/AndreyAkinshin/fuzzy/internal/errors"
	"github.com/AndreyAkinshin/fuzzy/internal/output"
	"github.com/AndreyAkinshin/fuzzy/pkg/fuzzy"
)

// fail reports err and returns its exit code.
func fail(err error) int {
	out.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}

// prepare loads the settings and parses exactly n numeric operands.
// On failure it reports the error and returns a nil settings with the exit code.
func prepare(cmd string, args []string, n int, opts *GlobalOptions) (*settings, []float64, int) {
	s, err := loadSettings(opts)
	for _, w := range s.Warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return nil, nil, fail(err)
	}

	vals, err := parseOperands(cmd, args, n, s.Precision)
	if err != nil {
		return nil, nil, fail(err)
	}
	return s, vals, 0
}

// parseOperands parses numbers at the given precision. Besides decimal and
// hexadecimal floats it accepts NaN, Inf and Infinity with an optional sign.
func parseOperands(cmd string, args []string, n, precision int) ([]float64, error) {
	if len(args) != n {
		noun := "operands"
		if n == 1 {
			noun = "operand"
		}
		return nil, errors.Usagef(cmd, "expected %d %s, got %d", n, noun, len(args))
	}

	vals := make([]float64, n)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, precision)
		if err != nil {
			if stderrors.Is(err, strconv.ErrRange) {
				return nil, errors.Usagef(cmd, "%s is out of range for float%d", arg, precision)
			}
			return nil, errors.Usagef(cmd, "invalid number %q", arg)
		}
		vals[i] = v
	}
	return vals, nil
}

// formatFloat formats v with the shortest representation that round-trips at its precision.
func formatFloat[F fuzzy.Float](v F) string {
	return strconv.FormatFloat(float64(v), 'g', -1, fuzzy.LayoutOf[F]().Width)
}

// cmdEq reports whether two values are fuzzy-equal.
func cmdEq(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printOperandUsage("eq", "<a> <b>", "Report whether two values are fuzzy-equal",
			"Exits with 0 when equal and 3 when not.",
			[]string{"fuzzy eq 1 1.0000000001", "fuzzy --margin 0 --ulps 2 eq 1 1.0000000000000004"})
		return 0
	}
	s, vals, code := prepare("eq", args, 2, opts)
	if s == nil {
		return code
	}
	if s.Precision == 32 {
		return runEq(s, float32(vals[0]), float32(vals[1]))
	}
	return runEq(s, vals[0], vals[1])
}

func runEq[F fuzzy.Float](s *settings, a, b F) int {
	var equal bool
	if s.Hashed {
		equal = hashedOf(s, a).Equal(hashedOf(s, b))
	} else {
		equal = valueOf(s, a).EqualRaw(b)
	}

	if equal {
		out.Verdict(true, "equal")
		return 0
	}
	out.Verdict(false, "not equal")
	return errors.ExitMismatch
}

// cmdCmp prints the fuzzy three-way comparison of two values.
func cmdCmp(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printOperandUsage("cmp", "<a> <b>", "Fuzzy three-way comparison",
			"Prints 0 when the values are fuzzy-equal, otherwise -1 or 1 by numeric order.",
			[]string{"fuzzy cmp 1 2", "fuzzy --margin 0.5 cmp 1 1.4"})
		return 0
	}
	s, vals, code := prepare("cmp", args, 2, opts)
	if s == nil {
		return code
	}
	if s.Precision == 32 {
		out.Println("%d", runCmp(s, float32(vals[0]), float32(vals[1])))
	} else {
		out.Println("%d", runCmp(s, vals[0], vals[1]))
	}
	return 0
}

func runCmp[F fuzzy.Float](s *settings, a, b F) int {
	if s.Hashed {
		return hashedOf(s, a).Compare(hashedOf(s, b))
	}
	return valueOf(s, a).CompareRaw(b)
}

// cmdULP prints the unit in the last place of a value.
func cmdULP(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printOperandUsage("ulp", "<x>", "Unit in the last place of a value",
			"The gap between x and the next representable value away from zero.",
			[]string{"fuzzy ulp 1", "fuzzy --precision 32 ulp 3.4e38"})
		return 0
	}
	s, vals, code := prepare("ulp", args, 1, opts)
	if s == nil {
		return code
	}
	if s.Precision == 32 {
		out.Println("%s", formatFloat(fuzzy.ULP(float32(vals[0]))))
	} else {
		out.Println("%s", formatFloat(fuzzy.ULP(vals[0])))
	}
	return 0
}

// cmdDist prints the distance between two values in ULPs.
func cmdDist(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printOperandUsage("dist", "<a> <b>", "Distance in ULPs between values of the same sign",
			"Fails when the sign bits of the values differ.",
			[]string{"fuzzy dist 1 1.0000000000000004", "fuzzy --precision 32 dist 0 1"})
		return 0
	}
	s, vals, code := prepare("dist", args, 2, opts)
	if s == nil {
		return code
	}

	var d int64
	var err error
	if s.Precision == 32 {
		d, err = fuzzy.ULPDistance(float32(vals[0]), float32(vals[1]))
	} else {
		d, err = fuzzy.ULPDistance(vals[0], vals[1])
	}
	if err != nil {
		return fail(errors.CommandError("dist", err))
	}
	out.Println("%d", d)
	return 0
}

// cmdBits shows the IEEE 754 fields of a value.
func cmdBits(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printOperandUsage("bits", "<x>", "Show sign, exponent, mantissa and bytes",
			"Bytes are printed in little-endian order.",
			[]string{"fuzzy bits 1", "fuzzy --precision 32 bits -0.5"})
		return 0
	}
	s, vals, code := prepare("bits", args, 1, opts)
	if s == nil {
		return code
	}
	if s.Precision == 32 {
		return runBits(float32(vals[0]))
	}
	return runBits(vals[0])
}

func runBits[F fuzzy.Float](v F) int {
	view := fuzzy.NewBitView(v)
	layout := fuzzy.LayoutOf[F]()

	var buf [8]byte
	n, err := view.PutBytes(buf[:])
	if err != nil {
		return fail(errors.CommandError("bits", err))
	}

	sign := 0
	if view.IsNegative() {
		sign = 1
	}
	mask := uint64(math.MaxUint64) >> (64 - layout.Width)

	const width = 9
	out.Field("value", formatFloat(view.Value()), width)
	out.Field("layout", layout.Name, width)
	out.Field("bits", fmt.Sprintf("0x%0*x", layout.Width/4, uint64(view.Bits())&mask), width)
	out.Field("sign", strconv.Itoa(sign), width)
	out.Field("exponent", fmt.Sprintf("%d (unbiased %d)", view.Exponent(), view.Exponent()-(1<<(layout.ExponentBits-1)-1)), width)
	out.Field("mantissa", fmt.Sprintf("%#x", view.Mantissa()), width)
	out.Field("bytes", fmt.Sprintf("% x", buf[:n]), width)
	return 0
}

// cmdBucket shows how a value is bucketed for hashing.
func cmdBucket(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printOperandUsage("bucket", "<x>", "Show hash boundary, bucket and hash",
			"Values that are fuzzy-equal under --hashed share a bucket and a hash.",
			[]string{"fuzzy bucket 1", "fuzzy --scale 4 bucket 1"})
		return 0
	}
	s, vals, code := prepare("bucket", args, 1, opts)
	if s == nil {
		return code
	}
	if s.Precision == 32 {
		runBucket(s, float32(vals[0]))
	} else {
		runBucket(s, vals[0])
	}
	return 0
}

func runBucket[F fuzzy.Float](s *settings, v F) {
	h := hashedOf(s, v)
	boundary := h.Boundary()
	key := fuzzy.RoundToBoundary(v, boundary)

	const width = 9
	out.Field("value", h.String(), width)
	out.Field("bits", output.Count(fuzzy.Bits(v)), width)
	out.Field("boundary", output.Count(boundary), width)
	out.Field("bucket", output.Count(key), width)
	out.Field("hash", fmt.Sprintf("%#016x", h.Hash()), width)
}

// cmdDiff structurally compares two documents.
func cmdDiff(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printDiffUsage()
		return 0
	}
	s, err := loadSettings(opts)
	for _, w := range s.Warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return fail(err)
	}
	if len(args) != 2 {
		return fail(errors.Usagef("diff", "expected 2 documents, got %d", len(args)))
	}

	docs := make([]interface{}, 2)
	for i, path := range args {
		doc, err := compare.Load(path)
		if err != nil {
			return fail(errors.CommandError("diff", err))
		}
		docs[i] = doc
	}

	diffs := compare.Diff(docs[0], docs[1], s.compareOptions())
	if len(diffs) == 0 {
		out.Success("documents are equal")
		return 0
	}

	noun := "differences"
	if len(diffs) == 1 {
		noun = "difference"
	}
	out.Println("%s %s:", output.Count(int64(len(diffs))), noun)
	for _, d := range diffs {
		out.Difference(d.Path, d.Message)
	}
	return errors.ExitMismatch
}

// printOperandUsage prints the help text shared by the numeric commands.
func printOperandUsage(cmd, operands, title, detail string, examples []string) {
	out.HelpTitle(fmt.Sprintf("fuzzy %s - %s", cmd, cases.Lower(language.English).String(title)))

	out.HelpSection("Usage:")
	out.HelpUsage(fmt.Sprintf("fuzzy [flags] %s %s", cmd, operands))
	out.Println("")
	out.Println("  %s", detail)

	printGlobalFlags()

	out.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	for i, ex := range examples {
		desc := ""
		if i == 0 {
			desc = titleCase.String(cmd) + " with the default profile"
		}
		out.HelpExample(ex, desc)
	}
	out.Println("")
}

func printDiffUsage() {
	out.HelpTitle("fuzzy diff - compare two JSON or YAML documents")

	out.HelpSection("Usage:")
	out.HelpUsage("fuzzy [flags] diff <expected> <actual>")
	out.Println("")
	out.Println("  Numbers are compared with the active profile. The strings \"NaN\", \"Infinity\"")
	out.Println("  and \"-Infinity\" match the corresponding float values. Use - to read stdin.")
	out.Println("  Exits with 0 when equal and 3 when the documents differ.")

	printGlobalFlags()

	out.HelpSection("Examples:")
	out.HelpExample("fuzzy diff expected.json actual.json", "Compare with the default profile")
	out.HelpExample("fuzzy --profile loose diff expected.yaml actual.json", "Compare YAML with JSON")
	out.Println("")
}

// cmdConfig shows the effective configuration, validates the configuration
// file or lists the profile names.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printConfigUsage()
		return 0
	}
	if len(args) > 1 {
		return fail(errors.Usagef("config", "expected at most 1 argument, got %d", len(args)))
	}

	sub := "show"
	if len(args) == 1 {
		sub = args[0]
	}
	switch sub {
	case "show":
		return configShow(opts)
	case "validate":
		return configValidate(opts)
	case "profiles":
		return configProfiles(opts)
	default:
		return fail(errors.Usagef("config", "unknown subcommand %q (expected show, validate or profiles)", sub))
	}
}

func configShow(opts *GlobalOptions) int {
	s, err := loadSettings(opts)
	for _, w := range s.Warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return fail(err)
	}

	source := s.ConfigPath
	if source == "" {
		source = "(built-in defaults)"
	}

	const width = 15
	out.Field("file", source, width)
	out.Field("profile", s.ProfileName, width)
	out.Field("precision", strconv.Itoa(s.Precision), width)
	out.Field("margin_of_error", strconv.FormatFloat(s.Tolerance.MarginOfError, 'g', -1, 64), width)
	out.Field("ulp_tolerance", strconv.Itoa(s.Tolerance.ULPTolerance), width)
	out.Field("boundary_scale", strconv.Itoa(s.Tolerance.BoundaryScale), width)
	out.Field("hashed", strconv.FormatBool(s.Hashed), width)
	out.Field("array_order", s.Comparison.ArrayOrder, width)
	out.Field("nan_equals_nan", strconv.FormatBool(s.Comparison.NaNEqualsNaN), width)

	out.Section("Profiles")
	if out.Quiet() {
		return 0
	}
	var rows [][]string
	for _, name := range s.Config.ProfileNames() {
		p := s.Config.Profiles[name]
		t := p.Tolerance()
		marker := ""
		if name == s.ProfileName {
			marker = "*"
		}
		rows = append(rows, []string{
			name + marker,
			strconv.Itoa(p.Precision),
			strconv.FormatFloat(t.MarginOfError, 'g', -1, 64),
			strconv.Itoa(t.ULPTolerance),
			strconv.Itoa(t.BoundaryScale),
			strconv.FormatBool(p.Hashed),
		})
	}
	out.Table([]string{"Profile", "Precision", "Margin", "Ulps", "Scale", "Hashed"}, rows)
	return 0
}

func configValidate(opts *GlobalOptions) int {
	path := config.Resolve(opts.ConfigPath, workingDir)
	if path == "" {
		return fail(errors.Configf("no configuration file found (looked for %s)", strings.Join(config.FileNames, ", ")))
	}

	cfg, warnings, err := config.LoadAndValidate(path)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return fail(configError(path, err))
	}

	noun := "profiles"
	if len(cfg.Profiles) == 1 {
		noun = "profile"
	}
	out.Success("%s is valid (%d %s)", path, len(cfg.Profiles), noun)
	return 0
}

func configProfiles(opts *GlobalOptions) int {
	s, err := loadSettings(opts)
	if err != nil {
		return fail(err)
	}
	for _, name := range s.Config.ProfileNames() {
		out.Println("%s", name)
	}
	return 0
}

func printConfigUsage() {
	out.HelpTitle("fuzzy config - show or validate the configuration")

	out.HelpSection("Usage:")
	out.HelpUsage("fuzzy [flags] config [show|validate|profiles]")

	out.HelpSection("Subcommands:")
	out.HelpCommand("show", "Print the effective settings and all profiles (default)", 10)
	out.HelpCommand("validate", "Check the configuration file against the schema", 10)
	out.HelpCommand("profiles", "List profile names, one per line", 10)

	out.Println("")
	out.Println("  The configuration is read from --config, then $%s, then the first", config.EnvConfig)
	out.Println("  of %s in the working directory.", strings.Join(config.FileNames, ", "))

	printGlobalFlags()
	out.Println("")
}
