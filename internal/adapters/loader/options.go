// Package loader resolves compiled units out of carton archives, either from bytes held in
// memory or from archive files registered on a search path.
package loader

import (
	"go.trai.ch/carton/internal/adapters/archive"
	"go.trai.ch/carton/internal/core/ports"
)

type options struct {
	reader ports.ArchiveReader
	parent ports.UnitResolver
	logger ports.Logger
}

// Option configures a loader.
type Option func(*options)

// WithReader replaces the archive reader used for lookups.
func WithReader(r ports.ArchiveReader) Option {
	return func(o *options) {
		o.reader = r
	}
}

// WithParent sets the resolver consulted after every local archive missed.
func WithParent(p ports.UnitResolver) Option {
	return func(o *options) {
		o.parent = p
	}
}

// WithLogger sets the logger that reports skipped archives.
func WithLogger(l ports.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.reader == nil {
		o.reader = archive.NewCodec()
	}
	if o.logger == nil {
		o.logger = nopLogger{}
	}
	return o
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(error)          {}
