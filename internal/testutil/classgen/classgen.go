// Package classgen synthesizes minimal, well-formed class files for tests.
package classgen

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Access flags understood by Spec.Access.
const (
	AccPublic     uint16 = 0x0001
	AccSuper      uint16 = 0x0020
	AccInterface  uint16 = 0x0200
	AccAbstract   uint16 = 0x0400
	AccAnnotation uint16 = 0x2000
	AccEnum       uint16 = 0x4000
)

// Spec describes the class file to generate. Names are dotted ("app.Main").
type Spec struct {
	Name string
	// Super defaults to java.lang.Object. NoSuper omits it entirely.
	Super   string
	NoSuper bool

	Interfaces []string
	// References become CONSTANT_Class entries. Array forms ("[Lapp.Helper;") are kept as-is.
	References []string
	// Descriptors become CONSTANT_NameAndType entries.
	Descriptors []string
	// MethodTypes become CONSTANT_MethodType entries.
	MethodTypes []string
	// Fields and Methods are the descriptors of the class's own members.
	Fields  []string
	Methods []string

	Access     uint16
	Major      uint16
	SourceFile string
}

// Class returns a public class named name that references refs.
func Class(name string, refs ...string) []byte {
	return Build(Spec{Name: name, References: refs})
}

type pool struct {
	buf     bytes.Buffer
	count   uint16
	utf8s   map[string]uint16
	classes map[string]uint16
}

func internal(s string) string {
	return strings.ReplaceAll(s, ".", "/")
}

func (p *pool) utf8(s string) uint16 {
	if idx, ok := p.utf8s[s]; ok {
		return idx
	}
	p.count++
	p.buf.WriteByte(1)
	writeU2(&p.buf, uint16(len(s)))
	p.buf.WriteString(s)
	p.utf8s[s] = p.count
	return p.count
}

func (p *pool) class(name string) uint16 {
	in := internal(name)
	if idx, ok := p.classes[in]; ok {
		return idx
	}
	nameIdx := p.utf8(in)
	p.count++
	p.buf.WriteByte(7)
	writeU2(&p.buf, nameIdx)
	p.classes[in] = p.count
	return p.count
}

func (p *pool) nameAndType(name, desc string) {
	n, d := p.utf8(name), p.utf8(internal(desc))
	p.count++
	p.buf.WriteByte(12)
	writeU2(&p.buf, n)
	writeU2(&p.buf, d)
}

func (p *pool) methodType(desc string) {
	d := p.utf8(internal(desc))
	p.count++
	p.buf.WriteByte(16)
	writeU2(&p.buf, d)
}

// Build renders spec as class-file bytes.
func Build(spec Spec) []byte {
	p := &pool{utf8s: map[string]uint16{}, classes: map[string]uint16{}}

	this := p.class(spec.Name)
	var super uint16
	if !spec.NoSuper {
		s := spec.Super
		if s == "" {
			s = "java.lang.Object"
		}
		super = p.class(s)
	}
	ifaces := make([]uint16, len(spec.Interfaces))
	for i, n := range spec.Interfaces {
		ifaces[i] = p.class(n)
	}
	for _, r := range spec.References {
		p.class(r)
	}
	for _, d := range spec.Descriptors {
		p.nameAndType("ref", d)
	}
	for _, d := range spec.MethodTypes {
		p.methodType(d)
	}

	type member struct{ name, desc uint16 }
	members := func(prefix string, descs []string) []member {
		out := make([]member, len(descs))
		for i, d := range descs {
			out[i] = member{p.utf8(prefix + string(rune('a'+i))), p.utf8(internal(d))}
		}
		return out
	}
	fields := members("f", spec.Fields)
	methods := members("m", spec.Methods)

	var sourceName, sourceValue uint16
	if spec.SourceFile != "" {
		sourceName, sourceValue = p.utf8("SourceFile"), p.utf8(spec.SourceFile)
	}

	access := spec.Access
	if access == 0 {
		access = AccPublic | AccSuper
	}
	major := spec.Major
	if major == 0 {
		major = 61
	}

	var out bytes.Buffer
	writeU4(&out, 0xCAFEBABE)
	writeU2(&out, 0)
	writeU2(&out, major)
	writeU2(&out, p.count+1)
	out.Write(p.buf.Bytes())
	writeU2(&out, access)
	writeU2(&out, this)
	writeU2(&out, super)
	writeU2(&out, uint16(len(ifaces)))
	for _, i := range ifaces {
		writeU2(&out, i)
	}
	for _, ms := range [][]member{fields, methods} {
		writeU2(&out, uint16(len(ms)))
		for _, m := range ms {
			writeU2(&out, 0x0001)
			writeU2(&out, m.name)
			writeU2(&out, m.desc)
			writeU2(&out, 0)
		}
	}
	if sourceName != 0 {
		writeU2(&out, 1)
		writeU2(&out, sourceName)
		writeU4(&out, 2)
		writeU2(&out, sourceValue)
	} else {
		writeU2(&out, 0)
	}
	return out.Bytes()
}

func writeU2(b *bytes.Buffer, v uint16) {
	_ = binary.Write(b, binary.BigEndian, v)
}

func writeU4(b *bytes.Buffer, v uint32) {
	_ = binary.Write(b, binary.BigEndian, v)
}
