// Package archive implements the carton container archive format.
//
// An archive is a magic header, an index naming every packed unit with a checksum of its
// payload, and the entries themselves in index order:
//
//	magic   "CRTN"
//	version 0x01
//	index   uvarint count, then per unit: uvarint len, name, 0x01, xxhash64 (8 bytes LE)
//	entries per unit: uvarint len, name, uvarint len, payload
//
// The index is authoritative for presence: lookups decode it first and only scan entries
// for names it lists.
package archive

import (
	"bytes"
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/zerr"
)

// Magic identifies a carton archive.
const Magic = "CRTN"

// Version is the archive format version written by Pack.
const Version byte = 0x01

const (
	markerPresent byte = 0x01
	checksumSize       = 8
	// smallest encoded index entry: one-byte length, one-byte name, marker, checksum.
	minIndexEntry = 2 + 1 + checksumSize
)

// Pack serializes units into one archive. Entries are written in name order, so packing
// the same set twice yields identical bytes.
func Pack(units map[domain.UnitName][]byte) ([]byte, error) {
	names := make([]domain.UnitName, 0, len(units))
	size := len(Magic) + 1 + binary.MaxVarintLen64
	for name, payload := range units {
		if name.IsZero() || name.String() == "" {
			return nil, zerr.Wrap(domain.ErrInvalidArchiveEntry, "unit name is empty")
		}
		if parsed, err := domain.ParseUnitName(name.String()); err != nil || parsed != name {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidArchiveEntry, "unit name is not canonical"), "unit", name.String())
		}
		if len(payload) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidArchiveEntry, "unit payload is empty"), "unit", name.String())
		}
		names = append(names, name)
		size += 2*(len(name.String())+binary.MaxVarintLen64) + 1 + checksumSize + binary.MaxVarintLen64 + len(payload)
	}
	slices.SortFunc(names, domain.UnitName.Compare)

	buf := make([]byte, 0, size)
	buf = append(buf, Magic...)
	buf = append(buf, Version)
	buf = binary.AppendUvarint(buf, uint64(len(names)))
	for _, name := range names {
		buf = appendString(buf, name.String())
		buf = append(buf, markerPresent)
		buf = binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(units[name]))
	}
	for _, name := range names {
		buf = appendString(buf, name.String())
		buf = binary.AppendUvarint(buf, uint64(len(units[name])))
		buf = append(buf, units[name]...)
	}
	return buf, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// Index is the decoded index section of an archive.
type Index struct {
	entries []domain.IndexEntry
	pos     map[domain.UnitName]int
	// offset of the entries section within the archive.
	entriesAt int
}

// Contains reports whether the index lists name.
func (ix *Index) Contains(name domain.UnitName) bool {
	_, ok := ix.pos[name]
	return ok
}

// Checksum returns the recorded payload checksum of name.
func (ix *Index) Checksum(name domain.UnitName) (uint64, bool) {
	i, ok := ix.pos[name]
	if !ok {
		return 0, false
	}
	return ix.entries[i].Checksum, true
}

// Len returns the number of indexed units.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns the index entries in archive order.
func (ix *Index) Entries() []domain.IndexEntry {
	return slices.Clone(ix.entries)
}

// Names returns the indexed unit names in archive order.
func (ix *Index) Names() []domain.UnitName {
	out := make([]domain.UnitName, len(ix.entries))
	for i, e := range ix.entries {
		out[i] = e.Name
	}
	return out
}

type decoder struct {
	data []byte
	off  int
}

func corrupt(msg string, off int) error {
	return zerr.With(zerr.Wrap(domain.ErrCorruptArchive, msg), "offset", off)
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

func (d *decoder) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.data[d.off:])
	if n <= 0 {
		return 0, corrupt("bad length prefix", d.off)
	}
	d.off += n
	return v, nil
}

func (d *decoder) take(n uint64) ([]byte, error) {
	if n > uint64(d.remaining()) {
		return nil, corrupt("section overruns archive", d.off)
	}
	b := d.data[d.off : d.off+int(n)]
	d.off += int(n)
	return b, nil
}

func (d *decoder) name() (domain.UnitName, error) {
	at := d.off
	n, err := d.uvarint()
	if err != nil {
		return domain.UnitName{}, err
	}
	b, err := d.take(n)
	if err != nil {
		return domain.UnitName{}, err
	}
	name, err := domain.ParseUnitName(string(b))
	if err != nil || name.String() != string(b) {
		return domain.UnitName{}, zerr.With(corrupt("bad unit name", at), "name", string(b))
	}
	return name, nil
}

// ReadIndex decodes the header and index of an archive without touching its entries.
func ReadIndex(data []byte) (*Index, error) {
	if len(data) < len(Magic)+1 || !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return nil, corrupt("bad magic", 0)
	}
	if v := data[len(Magic)]; v != Version {
		return nil, zerr.With(corrupt("unsupported version", len(Magic)), "version", v)
	}

	d := &decoder{data: data, off: len(Magic) + 1}
	count, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	if count > uint64(d.remaining()/minIndexEntry) {
		return nil, zerr.With(corrupt("index count exceeds archive size", d.off), "count", count)
	}

	ix := &Index{
		entries: make([]domain.IndexEntry, 0, count),
		pos:     make(map[domain.UnitName]int, count),
	}
	for range count {
		at := d.off
		name, err := d.name()
		if err != nil {
			return nil, err
		}
		marker, err := d.take(1)
		if err != nil {
			return nil, err
		}
		if marker[0] != markerPresent {
			return nil, zerr.With(corrupt("bad index marker", at), "name", name.String())
		}
		sum, err := d.take(checksumSize)
		if err != nil {
			return nil, err
		}
		if _, dup := ix.pos[name]; dup {
			return nil, zerr.With(corrupt("duplicate index entry", at), "name", name.String())
		}
		ix.pos[name] = len(ix.entries)
		ix.entries = append(ix.entries, domain.IndexEntry{Name: name, Checksum: binary.LittleEndian.Uint64(sum)})
	}
	ix.entriesAt = d.off
	return ix, nil
}

// nextEntry decodes one entry of the entries section.
func (d *decoder) nextEntry() (domain.UnitName, []byte, error) {
	name, err := d.name()
	if err != nil {
		return domain.UnitName{}, nil, err
	}
	n, err := d.uvarint()
	if err != nil {
		return domain.UnitName{}, nil, err
	}
	payload, err := d.take(n)
	if err != nil {
		return domain.UnitName{}, nil, zerr.With(err, "name", name.String())
	}
	return name, payload, nil
}

// Lookup returns a copy of name's payload. It reports false, without scanning entries,
// when the index does not list name.
func Lookup(data []byte, name domain.UnitName) ([]byte, bool, error) {
	ix, err := ReadIndex(data)
	if err != nil {
		return nil, false, err
	}
	return ix.lookup(data, name)
}

func (ix *Index) lookup(data []byte, name domain.UnitName) ([]byte, bool, error) {
	want, ok := ix.Checksum(name)
	if !ok {
		return nil, false, nil
	}

	d := &decoder{data: data, off: ix.entriesAt}
	for d.remaining() > 0 {
		got, payload, err := d.nextEntry()
		if err != nil {
			return nil, false, zerr.With(err, "unit", name.String())
		}
		if got != name {
			continue
		}
		if xxhash.Sum64(payload) != want {
			return nil, false, zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "entry checksum mismatch"), "unit", name.String())
		}
		return slices.Clone(payload), true, nil
	}
	return nil, false, zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "indexed entry is missing"), "unit", name.String())
}

// Verify checks that the entries section holds exactly the indexed units, in index order,
// with matching checksums and no trailing bytes.
func Verify(data []byte) error {
	ix, err := ReadIndex(data)
	if err != nil {
		return err
	}

	d := &decoder{data: data, off: ix.entriesAt}
	for i, want := range ix.entries {
		if d.remaining() == 0 {
			return zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "indexed entry is missing"), "unit", want.Name.String())
		}
		name, payload, err := d.nextEntry()
		if err != nil {
			return err
		}
		if name != want.Name {
			err := zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "entry out of index order"), "position", i)
			return zerr.With(zerr.With(err, "want", want.Name.String()), "got", name.String())
		}
		if xxhash.Sum64(payload) != want.Checksum {
			return zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "entry checksum mismatch"), "unit", name.String())
		}
	}
	if d.remaining() > 0 {
		return corrupt("unindexed trailing entries", d.off)
	}
	return nil
}

// Unpack returns every unit of a verified archive.
func Unpack(data []byte) (map[domain.UnitName][]byte, error) {
	if err := Verify(data); err != nil {
		return nil, err
	}
	ix, err := ReadIndex(data)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.UnitName][]byte, ix.Len())
	d := &decoder{data: data, off: ix.entriesAt}
	for d.remaining() > 0 {
		name, payload, err := d.nextEntry()
		if err != nil {
			return nil, err
		}
		out[name] = slices.Clone(payload)
	}
	return out, nil
}
