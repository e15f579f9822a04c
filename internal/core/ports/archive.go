package ports

import "go.trai.ch/carton/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks

// ArchiveReader looks units up inside container archives.
type ArchiveReader interface {
	// Lookup consults the index first and only scans entries when name is indexed.
	// It returns false when the index does not list name.
	Lookup(archive []byte, name domain.UnitName) ([]byte, bool, error)
}

// ArchiveCodec packs and inspects container archives.
type ArchiveCodec interface {
	ArchiveReader

	// Pack serializes units into one archive.
	Pack(units map[domain.UnitName][]byte) ([]byte, error)
	// Index decodes the archive index.
	Index(archive []byte) ([]domain.IndexEntry, error)
	// Unpack checks that the index and entries describe the same units and returns every
	// unit payload.
	Unpack(archive []byte) (map[domain.UnitName][]byte, error)
}
