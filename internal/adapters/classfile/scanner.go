package classfile

import (
	"slices"
	"strings"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
)

var _ ports.SymbolScanner = (*Scanner)(nil)

// Scanner extracts referenced unit names from class files.
type Scanner struct {
	platform []string
}

// NewScanner creates a scanner that omits names under the given platform prefixes.
// With no prefixes it omits domain.DefaultPlatformPrefixes.
func NewScanner(platform ...string) *Scanner {
	if len(platform) == 0 {
		platform = domain.DefaultPlatformPrefixes
	}
	return &Scanner{platform: slices.Clone(platform)}
}

// Scan returns the sorted, de-duplicated names referenced by one class file.
// The unit's own name and platform names are omitted.
func (s *Scanner) Scan(payload []byte) ([]domain.UnitName, error) {
	cf, err := parse(payload)
	if err != nil {
		return nil, err
	}
	self, err := cf.className(cf.this)
	if err != nil {
		return nil, err
	}

	internal, err := cf.referencedInternalNames()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(internal))
	out := make([]domain.UnitName, 0, len(internal))
	for _, in := range internal {
		if in == self {
			continue
		}
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		name, err := toUnitName(in)
		if err != nil {
			return nil, err
		}
		if s.isPlatform(name) {
			continue
		}
		out = append(out, name)
	}
	slices.SortFunc(out, domain.UnitName.Compare)
	return out, nil
}

func (s *Scanner) isPlatform(name domain.UnitName) bool {
	for _, p := range s.platform {
		if name.HasPrefix(p) {
			return true
		}
	}
	return false
}

// referencedInternalNames walks the constant pool and member descriptors.
func (cf *classFile) referencedInternalNames() ([]string, error) {
	var names []string
	var err error
	for _, c := range cf.pool {
		switch c.tag {
		case tagClass:
			n, uerr := cf.utf8(c.a)
			if uerr != nil {
				return nil, uerr
			}
			if strings.HasPrefix(n, "[") {
				names, err = descriptorNames(names, n)
			} else {
				names = append(names, n)
			}
		case tagNameAndType:
			d, uerr := cf.utf8(c.b)
			if uerr != nil {
				return nil, uerr
			}
			names, err = descriptorNames(names, d)
		case tagMethodType:
			d, uerr := cf.utf8(c.a)
			if uerr != nil {
				return nil, uerr
			}
			names, err = descriptorNames(names, d)
		}
		if err != nil {
			return nil, err
		}
	}
	for _, d := range cf.memberDescriptors {
		if names, err = descriptorNames(names, d); err != nil {
			return nil, err
		}
	}
	return names, nil
}
