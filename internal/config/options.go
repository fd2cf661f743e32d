// Package config defines the Options value threaded through the
// pipeline, the filter set and the converter, per spec §6.2. Carrying
// these as an explicit struct (rather than module-level mutable state)
// directly addresses spec §9's "Implicit global options singletons"
// redesign note.
package config

import "github.com/rubyjs/ruby2go/internal/diagnostics"

// Comparison selects how `==`/`===` lower.
type Comparison string

const (
	ComparisonEquality Comparison = "equality"
	ComparisonIdentity Comparison = "identity"
)

// OrMode selects how logical `or` lowers.
type OrMode string

const (
	OrAuto    OrMode = "auto"
	OrNullish OrMode = "nullish"
)

// TruthyMode selects the truthiness translation strategy.
type TruthyMode string

const (
	TruthyJS   TruthyMode = "js"
	TruthyRuby TruthyMode = "ruby"
)

// ModuleMode selects the emitted module system.
type ModuleMode string

const (
	ModuleESM ModuleMode = "esm"
	ModuleCJS ModuleMode = "cjs"
)

// supportedESLevels enumerates the legal `eslevel` values (spec §6.2):
// ES5, plus every ES year from 2015 through 2022.
var supportedESLevels = map[int]bool{
	5: true, 2015: true, 2016: true, 2017: true, 2018: true,
	2019: true, 2020: true, 2021: true, 2022: true,
}

// Options is the full recognized option set of spec §6.2.
type Options struct {
	ESLevel            int
	Strict             bool
	Comparison         Comparison
	Or                 OrMode
	Truthy             TruthyMode
	NullishToS         bool
	Module             ModuleMode
	UnderscoredPrivate bool
	Width              int
	Filters            []string
	Include            []string
	Exclude            []string
	IncludeOnly        []string
	Autoimports        map[string]string
	Autoexports        map[string]string
	Binding            map[string]string
	Ivars              map[string]string
	File               string
	Source             string
}

// Defaults returns the option set with every default from spec §6.2
// applied: ES2015, non-strict, equality comparison, auto or, js
// truthiness, esm modules, 80-column width.
func Defaults() Options {
	return Options{
		ESLevel:    2015,
		Comparison: ComparisonEquality,
		Or:         OrAuto,
		Truthy:     TruthyJS,
		Module:     ModuleESM,
		Width:      80,
	}
}

// knownFilters is the registry of filter identities the `filters` option
// may name; kept in sync with pkg/filters' registered set.
var knownFilters = map[string]bool{
	"autoreturn": true,
	"functions":  true,
	"camelCase":  true,
	"esm":        true,
	"strict":     true,
	"react":      true,
	"template":   true,
}

// Validate applies the defaults for any zero-valued field, then checks
// every option against its legal range, raising diagnostics.ConfigError
// per spec §7 for an unrecognized filter name or ES level. No partial
// compile is attempted: Validate either returns a fully legal Options or
// an error.
func (o Options) Validate() (Options, error) {
	d := Defaults()
	if o.ESLevel == 0 {
		o.ESLevel = d.ESLevel
	}
	if o.Comparison == "" {
		o.Comparison = d.Comparison
	}
	if o.Or == "" {
		o.Or = d.Or
	}
	if o.Truthy == "" {
		o.Truthy = d.Truthy
	}
	if o.Module == "" {
		o.Module = d.Module
	}
	if o.Width == 0 {
		o.Width = d.Width
	}

	if !supportedESLevels[o.ESLevel] {
		return o, &diagnostics.ConfigError{Option: "eslevel", Reason: "must be 5 or one of 2015..2022"}
	}
	if o.Comparison != ComparisonEquality && o.Comparison != ComparisonIdentity {
		return o, &diagnostics.ConfigError{Option: "comparison", Reason: "must be \"equality\" or \"identity\""}
	}
	if o.Or != OrAuto && o.Or != OrNullish {
		return o, &diagnostics.ConfigError{Option: "or", Reason: "must be \"auto\" or \"nullish\""}
	}
	if o.Truthy != TruthyJS && o.Truthy != TruthyRuby {
		return o, &diagnostics.ConfigError{Option: "truthy", Reason: "must be \"js\" or \"ruby\""}
	}
	if o.Module != ModuleESM && o.Module != ModuleCJS {
		return o, &diagnostics.ConfigError{Option: "module", Reason: "must be \"esm\" or \"cjs\""}
	}
	for _, f := range o.Filters {
		if !knownFilters[f] {
			return o, &diagnostics.ConfigError{Option: "filters", Reason: "unrecognized filter name \"" + f + "\""}
		}
	}
	return o, nil
}
