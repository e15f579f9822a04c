package loader

import (
	"context"

	"go.trai.ch/carton/internal/core/ports"
)

var _ ports.LoaderFactory = (*Factory)(nil)

// Factory creates loaders sharing one archive reader and logger.
type Factory struct {
	reader ports.ArchiveReader
	logger ports.Logger
}

// NewFactory creates a Factory.
func NewFactory(reader ports.ArchiveReader, logger ports.Logger) *Factory {
	return &Factory{reader: reader, logger: logger}
}

// NewMemoryLoader implements ports.LoaderFactory.
func (f *Factory) NewMemoryLoader(archives [][]byte) ports.UnitResolver {
	return NewMemoryLoader(archives, WithReader(f.reader), WithLogger(f.logger))
}

// NewFilesystemLoader implements ports.LoaderFactory.
func (f *Factory) NewFilesystemLoader(ctx context.Context, archives map[string][]byte) (ports.UnitResolver, error) {
	l, err := NewFilesystemLoader(ctx, archives, WithReader(f.reader), WithLogger(f.logger))
	if err != nil {
		return nil, err
	}
	return l, nil
}
