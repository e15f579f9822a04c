package archive

import (
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
)

var _ ports.ArchiveCodec = Codec{}

// Codec exposes the archive format through ports.ArchiveCodec.
type Codec struct{}

// NewCodec returns the archive codec.
func NewCodec() Codec {
	return Codec{}
}

// Pack implements ports.ArchiveCodec.
func (Codec) Pack(units map[domain.UnitName][]byte) ([]byte, error) {
	return Pack(units)
}

// Lookup implements ports.ArchiveReader.
func (Codec) Lookup(data []byte, name domain.UnitName) ([]byte, bool, error) {
	return Lookup(data, name)
}

// Index implements ports.ArchiveCodec.
func (Codec) Index(data []byte) ([]domain.IndexEntry, error) {
	ix, err := ReadIndex(data)
	if err != nil {
		return nil, err
	}
	return ix.Entries(), nil
}

// Unpack implements ports.ArchiveCodec.
func (Codec) Unpack(data []byte) (map[domain.UnitName][]byte, error) {
	return Unpack(data)
}
