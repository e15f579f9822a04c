package domain

// Unit is a compiled unit that has been defined by a loader.
// Units are immutable once created; loaders hand out shared pointers from their caches.
type Unit struct {
	// Name is the dotted name declared by the unit's this_class entry.
	Name UnitName

	// MajorVersion and MinorVersion are the class-file format version.
	MajorVersion uint16
	MinorVersion uint16

	// AccessFlags are the raw class access flags (ACC_PUBLIC, ACC_INTERFACE, ...).
	AccessFlags uint16

	// Super is the direct superclass. It is zero only for java.lang.Object and module-info.
	Super UnitName

	// Interfaces are the directly implemented interfaces in declaration order.
	Interfaces []UnitName

	// References are every unit name referenced from the constant pool, sorted.
	References []UnitName

	// Source identifies where the unit was loaded from (archive index or file path).
	Source string

	payload []byte
}

const (
	accInterface  = 0x0200
	accAbstract   = 0x0400
	accAnnotation = 0x2000
	accEnum       = 0x4000
)

// NewUnit builds a Unit that owns payload. Callers must not modify payload afterwards.
func NewUnit(name UnitName, payload []byte) *Unit {
	return &Unit{Name: name, payload: payload}
}

// Payload returns a copy of the unit's binary form.
func (u *Unit) Payload() []byte {
	out := make([]byte, len(u.payload))
	copy(out, u.payload)
	return out
}

// Size is the length of the binary form in bytes.
func (u *Unit) Size() int {
	return len(u.payload)
}

// Kind describes the unit as "class", "interface", "annotation", "enum" or "abstract class".
func (u *Unit) Kind() string {
	switch {
	case u.AccessFlags&accAnnotation != 0:
		return "annotation"
	case u.AccessFlags&accInterface != 0:
		return "interface"
	case u.AccessFlags&accEnum != 0:
		return "enum"
	case u.AccessFlags&accAbstract != 0:
		return "abstract class"
	default:
		return "class"
	}
}
