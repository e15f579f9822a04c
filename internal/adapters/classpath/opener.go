package classpath

import (
	cfs "go.trai.ch/carton/internal/adapters/fs"
	"go.trai.ch/carton/internal/core/ports"
)

var _ ports.SourceOpener = (*Opener)(nil)

// Opener resolves classpath entries (globs allowed) and opens them as a Source.
type Opener struct {
	resolver *cfs.Resolver
	walker   *cfs.Walker
	root     string
}

// NewOpener creates an Opener that resolves relative entries against root.
func NewOpener(resolver *cfs.Resolver, walker *cfs.Walker, root string) *Opener {
	return &Opener{resolver: resolver, walker: walker, root: root}
}

// Open implements ports.SourceOpener.
func (o *Opener) Open(entries []string) (ports.UnitSource, error) {
	s, err := o.OpenSource(entries)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSource is Open returning the concrete Source.
func (o *Opener) OpenSource(entries []string) (*Source, error) {
	paths, err := o.resolver.ResolveEntries(entries, o.root)
	if err != nil {
		return nil, err
	}
	return NewSource(o.walker, paths...)
}
