package domain

import "go.trai.ch/zerr"

var (
	// ErrParse is returned when a payload is not a well-formed class file.
	ErrParse = zerr.New("malformed compiled unit")

	// ErrUnresolvedDependency is returned when a closure reaches a unit that cannot be located
	// and missing units are not tolerated.
	ErrUnresolvedDependency = zerr.New("unresolved dependency")

	// ErrCorruptArchive is returned when an archive header, index or indexed entry is unreadable.
	ErrCorruptArchive = zerr.New("corrupt archive")

	// ErrUnitNotFound is returned when a loader exhausted every source for a unit.
	ErrUnitNotFound = zerr.New("unit not found")

	// ErrInvalidArchiveSpec is returned when a materialization target fails validation.
	ErrInvalidArchiveSpec = zerr.New("invalid archive spec")

	// ErrUnitNotLocated is returned by a unit source that has no payload for a name.
	ErrUnitNotLocated = zerr.New("unit not located")

	// ErrUnitNameMismatch is returned when a payload declares a different name than requested.
	ErrUnitNameMismatch = zerr.New("unit name mismatch")

	// ErrInvalidArchiveEntry is returned when packing an entry with an empty name or payload.
	ErrInvalidArchiveEntry = zerr.New("invalid archive entry")

	// ErrInvalidUnitName is returned for names that cannot identify a unit.
	ErrInvalidUnitName = zerr.New("invalid unit name")

	// ErrUnknownFilterMode is returned for a filter mode other than include or exclude.
	ErrUnknownFilterMode = zerr.New("unknown filter mode")

	// ErrNoRootsSpecified is returned when a closure is requested without roots.
	ErrNoRootsSpecified = zerr.New("no root units specified")

	// ErrMaterializeFailed is returned when writing an archive to disk fails part-way.
	ErrMaterializeFailed = zerr.New("archive materialization failed")

	// ErrNoPathFound is returned when no reference chain connects two units.
	ErrNoPathFound = zerr.New("no reference path found")
)
