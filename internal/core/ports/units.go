// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/carton/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=units.go -destination=mocks/mock_units.go -package=mocks

// UnitSource provides the binary form of compiled units by name.
type UnitSource interface {
	// Locate returns the payload for name.
	// It returns an error wrapping domain.ErrUnitNotLocated when the source has no such unit.
	Locate(ctx context.Context, name domain.UnitName) ([]byte, error)
}

// SourceOpener builds a UnitSource from classpath entries (directories and archives).
type SourceOpener interface {
	Open(entries []string) (UnitSource, error)
}

// SymbolScanner extracts the names a compiled unit references.
type SymbolScanner interface {
	// Scan parses one unit's symbol table. It fails with domain.ErrParse for malformed input.
	Scan(payload []byte) ([]domain.UnitName, error)
}

// UnitResolver turns unit names into defined units.
type UnitResolver interface {
	// Resolve returns the defined unit or an error wrapping domain.ErrUnitNotFound.
	Resolve(ctx context.Context, name domain.UnitName) (*domain.Unit, error)
}

// LoaderFactory creates the two loader strategies.
type LoaderFactory interface {
	// NewMemoryLoader resolves units from archive bytes held in memory.
	NewMemoryLoader(archives [][]byte) UnitResolver
	// NewFilesystemLoader writes each archive to its location and resolves through those paths.
	NewFilesystemLoader(ctx context.Context, archives map[string][]byte) (UnitResolver, error)
}

// UnitCatalog is implemented by sources that can enumerate their units.
type UnitCatalog interface {
	// Units lists every unit name the source can locate, sorted.
	Units(ctx context.Context) ([]domain.UnitName, error)
}
