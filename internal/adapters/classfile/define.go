package classfile

import (
	"slices"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/zerr"
)

// Define parses payload into a Unit. It fails with domain.ErrUnitNameMismatch when the class
// file declares a name other than name. The returned unit owns a private copy of payload.
func Define(name domain.UnitName, payload []byte, source string) (*domain.Unit, error) {
	cf, err := parse(payload)
	if err != nil {
		return nil, zerr.With(err, "unit", name.String())
	}

	declared, err := cf.unitName(cf.this)
	if err != nil {
		return nil, err
	}
	if declared != name {
		err := zerr.With(zerr.Wrap(domain.ErrUnitNameMismatch, "class file declares another name"), "requested", name.String())
		return nil, zerr.With(err, "declared", declared.String())
	}

	unit := domain.NewUnit(name, slices.Clone(payload))
	unit.MajorVersion = cf.major
	unit.MinorVersion = cf.minor
	unit.AccessFlags = cf.access
	unit.Source = source
	if cf.super != 0 {
		if unit.Super, err = cf.unitName(cf.super); err != nil {
			return nil, err
		}
	}
	for _, idx := range cf.interfaces {
		iface, err := cf.unitName(idx)
		if err != nil {
			return nil, err
		}
		unit.Interfaces = append(unit.Interfaces, iface)
	}

	internal, err := cf.referencedInternalNames()
	if err != nil {
		return nil, err
	}
	self := name.InternalName()
	for _, in := range internal {
		if in == self {
			continue
		}
		ref, err := toUnitName(in)
		if err != nil {
			return nil, zerr.With(err, "unit", name.String())
		}
		unit.References = append(unit.References, ref)
	}
	slices.SortFunc(unit.References, domain.UnitName.Compare)
	unit.References = slices.Compact(unit.References)
	return unit, nil
}
