package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// FilterMode is the polarity of a NameFilter.
type FilterMode string

const (
	// FilterExclude rejects names that start with any of the prefixes.
	FilterExclude FilterMode = "exclude"
	// FilterInclude accepts only names that start with one of the prefixes.
	FilterInclude FilterMode = "include"
)

// DefaultPlatformPrefixes are the packages that ship with the runtime and are never packed.
var DefaultPlatformPrefixes = []string{"java.", "javax."}

// NameFilter is an immutable prefix predicate over unit names.
type NameFilter struct {
	mode     FilterMode
	prefixes []string
}

// ExcludePrefixes returns a filter accepting every name that matches none of the prefixes.
func ExcludePrefixes(prefixes ...string) NameFilter {
	return NameFilter{mode: FilterExclude, prefixes: slices.Clone(prefixes)}
}

// IncludePrefixes returns a filter accepting only names matching one of the prefixes.
// It is the negation of ExcludePrefixes over the same prefixes.
func IncludePrefixes(prefixes ...string) NameFilter {
	return NameFilter{mode: FilterInclude, prefixes: slices.Clone(prefixes)}
}

// DefaultFilter excludes the platform packages.
func DefaultFilter() NameFilter {
	return ExcludePrefixes(DefaultPlatformPrefixes...)
}

// NewNameFilter builds a filter from a mode string as found in configuration.
func NewNameFilter(mode FilterMode, prefixes []string) (NameFilter, error) {
	switch mode {
	case FilterExclude, "":
		return ExcludePrefixes(prefixes...), nil
	case FilterInclude:
		return IncludePrefixes(prefixes...), nil
	default:
		return NameFilter{}, zerr.With(zerr.Wrap(ErrUnknownFilterMode, "invalid filter"), "mode", string(mode))
	}
}

// Accept reports whether name passes the filter.
// The zero NameFilter accepts everything.
func (f NameFilter) Accept(name UnitName) bool {
	matched := f.matches(name.String())
	if f.mode == FilterInclude {
		return matched
	}
	return !matched
}

func (f NameFilter) matches(s string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Mode returns the filter polarity.
func (f NameFilter) Mode() FilterMode {
	if f.mode == "" {
		return FilterExclude
	}
	return f.mode
}

// Prefixes returns a copy of the configured prefixes.
func (f NameFilter) Prefixes() []string {
	return slices.Clone(f.prefixes)
}

// String renders the filter for logs, e.g. "exclude[java. javax.]".
func (f NameFilter) String() string {
	return string(f.Mode()) + "[" + strings.Join(f.prefixes, " ") + "]"
}
