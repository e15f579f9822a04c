package domain

import (
	"strings"
	"unique"

	"go.trai.ch/zerr"
)

// ClassFileExtension is the resource suffix of a compiled unit on a classpath.
const ClassFileExtension = ".class"

// UnitName is the fully-qualified dotted name of a compiled unit (e.g. "app.Main").
// It is interned so that names repeated across symbol tables share one allocation.
type UnitName struct {
	h unique.Handle[string]
}

// NewUnitName interns a dotted unit name without validating it.
func NewUnitName(name string) UnitName {
	return UnitName{h: unique.Make(name)}
}

// ParseUnitName validates and interns a dotted unit name.
// Slash-separated internal names ("app/Main") are accepted and converted.
func ParseUnitName(name string) (UnitName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnitName{}, zerr.Wrap(ErrInvalidUnitName, "unit name is empty")
	}
	if strings.ContainsAny(name, ";[") {
		return UnitName{}, zerr.With(zerr.Wrap(ErrInvalidUnitName, "unit name contains descriptor characters"), "unit", name)
	}
	name = strings.ReplaceAll(name, "/", ".")
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return UnitName{}, zerr.With(zerr.Wrap(ErrInvalidUnitName, "unit name has an empty segment"), "unit", name)
	}
	return NewUnitName(name), nil
}

// ParseUnitNames validates a list of names, stopping at the first invalid one.
func ParseUnitNames(names []string) ([]UnitName, error) {
	res := make([]UnitName, 0, len(names))
	for _, n := range names {
		un, err := ParseUnitName(n)
		if err != nil {
			return nil, err
		}
		res = append(res, un)
	}
	return res, nil
}

// FromInternalName converts a class-file internal name ("app/Main") to a UnitName.
func FromInternalName(internal string) UnitName {
	return NewUnitName(strings.ReplaceAll(internal, "/", "."))
}

// String returns the dotted name.
func (n UnitName) String() string {
	var zero unique.Handle[string]
	if n.h == zero {
		return ""
	}
	return n.h.Value()
}

// IsZero reports whether the name was never set.
func (n UnitName) IsZero() bool {
	var zero unique.Handle[string]
	return n.h == zero
}

// InternalName returns the slash-separated form used inside class files.
func (n UnitName) InternalName() string {
	return strings.ReplaceAll(n.String(), ".", "/")
}

// ResourcePath returns the relative classpath location of the unit ("app/Main.class").
func (n UnitName) ResourcePath() string {
	return n.InternalName() + ClassFileExtension
}

// HasPrefix reports whether the dotted name starts with prefix.
func (n UnitName) HasPrefix(prefix string) bool {
	return strings.HasPrefix(n.String(), prefix)
}

// Compare orders names lexically, for use with slices.SortFunc.
func (n UnitName) Compare(other UnitName) int {
	return strings.Compare(n.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (n UnitName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *UnitName) UnmarshalText(text []byte) error {
	n.h = unique.Make(string(text))
	return nil
}

// UnitNameFromResource converts a classpath-relative resource path ("app/Main.class")
// to a unit name. It reports false for anything that is not a class resource.
func UnitNameFromResource(resource string) (UnitName, bool) {
	resource = strings.ReplaceAll(resource, "\\", "/")
	if !strings.HasSuffix(resource, ClassFileExtension) {
		return UnitName{}, false
	}
	internal := strings.TrimSuffix(resource, ClassFileExtension)
	if internal == "" || strings.HasPrefix(internal, "/") {
		return UnitName{}, false
	}
	return FromInternalName(internal), true
}

// Strings converts names to their dotted string forms.
func Strings(names []UnitName) []string {
	res := make([]string, len(names))
	for i, n := range names {
		res[i] = n.String()
	}
	return res
}
