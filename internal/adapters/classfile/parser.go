// Package classfile reads the JVM class-file format: it scans constant pools for referenced
// unit names and defines units from their binary form.
package classfile

import (
	"encoding/binary"
	"strings"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/zerr"
)

// Magic is the first four bytes of every class file.
const Magic uint32 = 0xCAFEBABE

// Constant pool tags.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

type constant struct {
	tag  uint8
	utf8 string
	// a and b are the first and second index operands, when the tag has them.
	a, b uint16
}

// classFile is the subset of a class file carton needs.
type classFile struct {
	minor, major uint16
	pool         []constant
	access       uint16
	this         uint16
	super        uint16
	interfaces   []uint16
	// descriptors of the class's own fields and methods.
	memberDescriptors []string
	sourceFile        string
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) need(n int) error {
	if n < 0 || len(r.buf)-r.off < n {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrParse, "unexpected end of class file"), "offset", r.off), "need", n)
	}
	return nil
}

func (r *reader) u1() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *reader) u2() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) u4() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.buf[r.off : r.off+n]
	r.off += n
	return v, nil
}

func parse(payload []byte) (*classFile, error) {
	r := &reader{buf: payload}

	magic, err := r.u4()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, zerr.With(zerr.Wrap(domain.ErrParse, "bad magic"), "magic", magic)
	}

	cf := &classFile{}
	if cf.minor, err = r.u2(); err != nil {
		return nil, err
	}
	if cf.major, err = r.u2(); err != nil {
		return nil, err
	}
	if err := cf.readPool(r); err != nil {
		return nil, err
	}
	if cf.access, err = r.u2(); err != nil {
		return nil, err
	}
	if cf.this, err = r.u2(); err != nil {
		return nil, err
	}
	if _, err := cf.className(cf.this); err != nil {
		return nil, err
	}
	if cf.super, err = r.u2(); err != nil {
		return nil, err
	}
	if cf.super != 0 {
		if _, err := cf.className(cf.super); err != nil {
			return nil, err
		}
	}

	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	cf.interfaces = make([]uint16, count)
	for i := range cf.interfaces {
		if cf.interfaces[i], err = r.u2(); err != nil {
			return nil, err
		}
		if _, err := cf.className(cf.interfaces[i]); err != nil {
			return nil, err
		}
	}

	// fields, then methods
	for range 2 {
		if err := cf.readMembers(r); err != nil {
			return nil, err
		}
	}

	return cf, cf.readAttributes(r)
}

func (cf *classFile) readPool(r *reader) error {
	count, err := r.u2()
	if err != nil {
		return err
	}
	if count == 0 {
		return zerr.Wrap(domain.ErrParse, "constant pool count is zero")
	}
	// Index 0 is unused; long and double occupy two slots.
	cf.pool = make([]constant, count)
	for i := 1; i < int(count); i++ {
		tag, err := r.u1()
		if err != nil {
			return err
		}
		c := constant{tag: tag}
		switch tag {
		case tagUtf8:
			n, err := r.u2()
			if err != nil {
				return err
			}
			b, err := r.bytes(int(n))
			if err != nil {
				return err
			}
			c.utf8 = string(b)
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			if c.a, err = r.u2(); err != nil {
				return err
			}
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			if c.a, err = r.u2(); err != nil {
				return err
			}
			if c.b, err = r.u2(); err != nil {
				return err
			}
		case tagMethodHandle:
			if _, err := r.u1(); err != nil {
				return err
			}
			if c.a, err = r.u2(); err != nil {
				return err
			}
		case tagInteger, tagFloat:
			if _, err := r.bytes(4); err != nil {
				return err
			}
		case tagLong, tagDouble:
			if _, err := r.bytes(8); err != nil {
				return err
			}
			cf.pool[i] = c
			i++
			continue
		default:
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrParse, "unknown constant pool tag"), "tag", tag), "index", i)
		}
		cf.pool[i] = c
	}
	return nil
}

func (cf *classFile) readMembers(r *reader) error {
	count, err := r.u2()
	if err != nil {
		return err
	}
	for range count {
		// access_flags, name_index
		if _, err := r.bytes(4); err != nil {
			return err
		}
		descIdx, err := r.u2()
		if err != nil {
			return err
		}
		desc, err := cf.utf8(descIdx)
		if err != nil {
			return err
		}
		cf.memberDescriptors = append(cf.memberDescriptors, desc)
		if err := cf.skipAttributes(r); err != nil {
			return err
		}
	}
	return nil
}

func (cf *classFile) skipAttributes(r *reader) error {
	count, err := r.u2()
	if err != nil {
		return err
	}
	for range count {
		if _, err := r.u2(); err != nil {
			return err
		}
		n, err := r.u4()
		if err != nil {
			return err
		}
		if _, err := r.bytes(int(n)); err != nil {
			return err
		}
	}
	return nil
}

func (cf *classFile) readAttributes(r *reader) error {
	count, err := r.u2()
	if err != nil {
		return err
	}
	for range count {
		nameIdx, err := r.u2()
		if err != nil {
			return err
		}
		n, err := r.u4()
		if err != nil {
			return err
		}
		body, err := r.bytes(int(n))
		if err != nil {
			return err
		}
		name, err := cf.utf8(nameIdx)
		if err != nil {
			return err
		}
		if name == "SourceFile" && len(body) == 2 {
			if cf.sourceFile, err = cf.utf8(binary.BigEndian.Uint16(body)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cf *classFile) entry(idx uint16, tag uint8) (constant, error) {
	if idx == 0 || int(idx) >= len(cf.pool) || cf.pool[idx].tag != tag {
		return constant{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrParse, "bad constant pool reference"), "index", idx), "want_tag", tag)
	}
	return cf.pool[idx], nil
}

func (cf *classFile) utf8(idx uint16) (string, error) {
	c, err := cf.entry(idx, tagUtf8)
	if err != nil {
		return "", err
	}
	return c.utf8, nil
}

// className returns the raw internal name held by a CONSTANT_Class entry.
func (cf *classFile) className(idx uint16) (string, error) {
	c, err := cf.entry(idx, tagClass)
	if err != nil {
		return "", err
	}
	return cf.utf8(c.a)
}

// unitName returns the dotted unit name of a CONSTANT_Class entry that names a class.
func (cf *classFile) unitName(idx uint16) (domain.UnitName, error) {
	s, err := cf.className(idx)
	if err != nil {
		return domain.UnitName{}, err
	}
	return toUnitName(s)
}

// toUnitName converts an internal name, rejecting names that would not survive a round
// trip through domain.ParseUnitName ("a//b", "app/Main ").
func toUnitName(internal string) (domain.UnitName, error) {
	name := domain.FromInternalName(internal)
	parsed, err := domain.ParseUnitName(name.String())
	if err != nil || parsed != name {
		return domain.UnitName{}, zerr.With(zerr.Wrap(domain.ErrParse, "bad class name"), "name", internal)
	}
	return name, nil
}

// descriptorNames appends the class names embedded in a field or method descriptor.
// "[Lapp/Helper;" and "(ILlib/Base;)V" both contribute their L...; types.
func descriptorNames(dst []string, desc string) ([]string, error) {
	for {
		i := strings.IndexByte(desc, 'L')
		if i < 0 {
			return dst, nil
		}
		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			return dst, zerr.With(zerr.Wrap(domain.ErrParse, "unterminated descriptor"), "descriptor", desc)
		}
		if end > 1 {
			dst = append(dst, desc[i+1:i+end])
		}
		desc = desc[i+end+1:]
	}
}
