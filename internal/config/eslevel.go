package config

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// esOrdinal maps an ES level to a dotted version string so levels can be
// compared with semver.Compare, per spec §8.5's monotonicity invariant
// (a later ES level never disables a lowering a prior level enabled). ES5
// predates the yearly numbering and sorts first.
func esOrdinal(level int) string {
	if level == 5 {
		return "v0.5.0"
	}
	return fmt.Sprintf("v%d.0.0", level)
}

// atLeastES reports whether o's configured ES level is at least min,
// per the ordinal table above.
func (o Options) atLeastES(min int) bool {
	return semver.Compare(esOrdinal(o.ESLevel), esOrdinal(min)) >= 0
}

// SupportsES2015 reports whether the configured ES level is at least
// 2015, gating every ES2015+ lowering named in spec §4.4 (arrow
// functions, template literals, let/const, class syntax, for..of,
// shorthand properties).
func (o Options) SupportsES2015() bool { return o.atLeastES(2015) }

// SupportsES2022 reports whether the configured ES level is at least
// 2022, gating private `#field` class members.
func (o Options) SupportsES2022() bool { return o.atLeastES(2022) }
