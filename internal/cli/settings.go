package cli

import (
	stderrors "errors"
	"math"

	"github.com/AndreyAkinshin/fuzzy/internal/compare"
	"github.com/AndreyAkinshin/fuzzy/internal/config"
	"github.com/AndreyAkinshin/fuzzy/internal/errors"
	"github.com/AndreyAkinshin/fuzzy/pkg/fuzzy"
)

// settings is the effective comparison setup of one invocation: the selected
// profile from the configuration file with global flags applied on top.
type settings struct {
	ConfigPath  string // "" when running on defaults
	Config      *config.Config
	ProfileName string
	Precision   int
	Tolerance   fuzzy.Tolerance
	Hashed      bool
	Comparison  config.ComparisonConfig
	Warnings    []string
}

// workingDir is where configuration files are searched for.
// Tests point it at fixture directories.
var workingDir = "."

// loadSettings resolves the configuration and applies global flag overrides.
func loadSettings(opts *GlobalOptions) (*settings, error) {
	s := &settings{ConfigPath: config.Resolve(opts.ConfigPath, workingDir)}

	if s.ConfigPath == "" {
		s.Config = config.Default()
	} else {
		cfg, warnings, err := config.LoadAndValidate(s.ConfigPath)
		s.Warnings = warnings
		if err != nil {
			return s, configError(s.ConfigPath, err)
		}
		s.Config = cfg
	}

	s.ProfileName = opts.Profile
	if s.ProfileName == "" {
		s.ProfileName = s.Config.DefaultProfile
	}
	profile, err := s.Config.Profile(s.ProfileName)
	if err != nil {
		return s, errors.Validation(err)
	}

	s.Precision = profile.Precision
	s.Tolerance = profile.Tolerance()
	s.Hashed = profile.Hashed
	s.Comparison = *s.Config.Comparison

	if opts.Precision != nil {
		s.Precision = *opts.Precision
	}
	if opts.Margin != nil {
		s.Tolerance.MarginOfError = *opts.Margin
	}
	if opts.ULPs != nil {
		s.Tolerance.ULPTolerance = *opts.ULPs
	}
	if opts.Scale != nil {
		s.Tolerance.BoundaryScale = *opts.Scale
	}
	if opts.Hashed {
		s.Hashed = true
	}
	s.Tolerance = s.Tolerance.Normalize()

	if math.IsNaN(s.Tolerance.MarginOfError) || math.IsInf(s.Tolerance.MarginOfError, 0) {
		return s, errors.Config("--margin must be a finite number")
	}

	return s, nil
}

// compareOptions returns the structural comparison options of s.
func (s *settings) compareOptions() compare.Options {
	return compare.Options{
		Tolerance:    s.Tolerance,
		Precision:    s.Precision,
		Hashed:       s.Hashed,
		ArrayOrder:   compare.ArrayOrder(s.Comparison.ArrayOrder),
		NaNEqualsNaN: s.Comparison.NaNEqualsNaN,
	}
}

func configError(path string, err error) error {
	var ve *config.ValidationError
	if stderrors.As(err, &ve) {
		return errors.Validation(err)
	}
	return errors.WrapConfig(err, path)
}

// hashedOf wraps v with the tolerance of s.
func hashedOf[F fuzzy.Float](s *settings, v F) fuzzy.Hashed[F] {
	return fuzzy.NewHashed(v, F(s.Tolerance.MarginOfError), s.Tolerance.ULPTolerance, s.Tolerance.BoundaryScale)
}

// valueOf wraps v with the tolerance of s.
func valueOf[F fuzzy.Float](s *settings, v F) fuzzy.Value[F] {
	return fuzzy.NewValue(v, F(s.Tolerance.MarginOfError), s.Tolerance.ULPTolerance)
}
