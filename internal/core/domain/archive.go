package domain

// ArchiveExtension is the file suffix of container archives on disk.
const ArchiveExtension = ".car"

// IndexEntry describes one unit listed in a container archive's index.
type IndexEntry struct {
	Name     UnitName
	Checksum uint64
	// Size is the payload length in bytes. It is zero unless the entries were read.
	Size int
}
