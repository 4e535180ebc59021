package funtext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config controls which containers are animated and how. Values are used as
// given; out-of-range numbers (such as WiggleDurationMin > WiggleDurationMax)
// are not rejected.
type Config struct {
	TargetClass      string // containers to animate
	LetterModeClass  string // containers wanting the staggered appear
	SmoothnessPrefix string // prefix of the smoothness-N modifier classes
	LabelClass       string // reserved marker for decorative labels that are never split
	FontFamily       string // inline font-family for every container; empty = unset

	AppearDuration   float64 // seconds per unit appear animation
	LetterStagger    float64 // seconds between consecutive appear starts
	PauseAfterAppear float64 // seconds after the last unit appears before wiggling

	DefaultWiggleEasing Easing
	WiggleDurationMin   float64
	WiggleDurationMax   float64
	WiggleDelayMax      float64

	CharUnitSuffix string // unit class = TargetClass + CharUnitSuffix
	ProcessedAttr  string // attribute marking containers already initialized
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		TargetClass:         "fun-text",
		LetterModeClass:     "appear-by-letter",
		SmoothnessPrefix:    "smoothness-",
		LabelClass:          "fun-label",
		AppearDuration:      0.9,
		LetterStagger:       0.08,
		PauseAfterAppear:    1.5,
		DefaultWiggleEasing: EaseInOut,
		WiggleDurationMin:   0.8,
		WiggleDurationMax:   1.6,
		WiggleDelayMax:      1.2,
		CharUnitSuffix:      "-char",
		ProcessedAttr:       "data-fun-processed",
	}
}

// UnitClass returns the class given to generated character units.
func (c Config) UnitClass() string {
	return c.TargetClass + c.CharUnitSuffix
}

// Options is a partial Config: every field is optional and nil fields keep
// the value they are applied over.
type Options struct {
	TargetClass         *string  `yaml:"target-class" toml:"target-class"`
	LetterModeClass     *string  `yaml:"letter-mode-class" toml:"letter-mode-class"`
	SmoothnessPrefix    *string  `yaml:"smoothness-prefix" toml:"smoothness-prefix"`
	LabelClass          *string  `yaml:"label-class" toml:"label-class"`
	FontFamily          *string  `yaml:"font-family" toml:"font-family"`
	AppearDuration      *float64 `yaml:"appear-duration" toml:"appear-duration"`
	LetterStagger       *float64 `yaml:"letter-stagger" toml:"letter-stagger"`
	PauseAfterAppear    *float64 `yaml:"pause-after-appear" toml:"pause-after-appear"`
	DefaultWiggleEasing *string  `yaml:"default-wiggle-easing" toml:"default-wiggle-easing"`
	WiggleDurationMin   *float64 `yaml:"wiggle-duration-min" toml:"wiggle-duration-min"`
	WiggleDurationMax   *float64 `yaml:"wiggle-duration-max" toml:"wiggle-duration-max"`
	WiggleDelayMax      *float64 `yaml:"wiggle-delay-max" toml:"wiggle-delay-max"`
	CharUnitSuffix      *string  `yaml:"char-unit-suffix" toml:"char-unit-suffix"`
}

// Apply merges the set fields of o over base.
func (o Options) Apply(base Config) (Config, error) {
	cfg := base
	applyString(&cfg.TargetClass, o.TargetClass)
	applyString(&cfg.LetterModeClass, o.LetterModeClass)
	applyString(&cfg.SmoothnessPrefix, o.SmoothnessPrefix)
	applyString(&cfg.LabelClass, o.LabelClass)
	applyString(&cfg.FontFamily, o.FontFamily)
	applyFloat(&cfg.AppearDuration, o.AppearDuration)
	applyFloat(&cfg.LetterStagger, o.LetterStagger)
	applyFloat(&cfg.PauseAfterAppear, o.PauseAfterAppear)
	applyFloat(&cfg.WiggleDurationMin, o.WiggleDurationMin)
	applyFloat(&cfg.WiggleDurationMax, o.WiggleDurationMax)
	applyFloat(&cfg.WiggleDelayMax, o.WiggleDelayMax)
	applyString(&cfg.CharUnitSuffix, o.CharUnitSuffix)
	if o.DefaultWiggleEasing != nil {
		e, err := ParseEasing(*o.DefaultWiggleEasing)
		if err != nil {
			return base, fmt.Errorf("funtext: default-wiggle-easing: %w", err)
		}
		cfg.DefaultWiggleEasing = e
	}
	return cfg, nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func applyFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

var (
	// ErrEmptyConfigPath is returned by LoadOptionsFile for an empty path.
	ErrEmptyConfigPath = errors.New("funtext: config path is empty")
	// ErrUnsupportedConfigFormat is returned for extensions other than
	// .yaml, .yml and .toml.
	ErrUnsupportedConfigFormat = errors.New("funtext: unsupported config format")
)

// LoadOptionsFile reads Options from a YAML or TOML file, chosen by
// extension. A missing file is not an error and yields empty Options.
func LoadOptionsFile(path string) (Options, error) {
	if path == "" {
		return Options{}, ErrEmptyConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("funtext: read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseOptionsYAML(data)
	case ".toml":
		return ParseOptionsTOML(data)
	default:
		return Options{}, fmt.Errorf("%w: %s", ErrUnsupportedConfigFormat, path)
	}
}

// ParseOptionsYAML decodes Options from YAML.
func ParseOptionsYAML(data []byte) (Options, error) {
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("funtext: parse yaml config: %w", err)
	}
	return o, nil
}

// ParseOptionsTOML decodes Options from TOML.
func ParseOptionsTOML(data []byte) (Options, error) {
	var o Options
	if _, err := toml.Decode(string(data), &o); err != nil {
		return Options{}, fmt.Errorf("funtext: parse toml config: %w", err)
	}
	return o, nil
}
