package domain_test

import (
	"errors"
	"slices"
	"testing"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/zerr"
)

func names(ss ...string) []domain.UnitName {
	res := make([]domain.UnitName, len(ss))
	for i, s := range ss {
		res[i] = domain.NewUnitName(s)
	}
	return res
}

func TestDependencyGraph_AddEdge(t *testing.T) {
	g := domain.NewDependencyGraph()
	a, b, c := domain.NewUnitName("A"), domain.NewUnitName("B"), domain.NewUnitName("C")

	g.AddEdge(a, b)
	g.AddEdge(a, b)
	g.AddEdge(a, c)
	g.AddEdge(b, a)

	if g.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.Len())
	}
	if got := g.Edges(a); !slices.Equal(got, names("B", "C")) {
		t.Errorf("unexpected edges of A: %v", got)
	}
	if got := g.Dependents(a); !slices.Equal(got, names("B")) {
		t.Errorf("unexpected dependents of A: %v", got)
	}
	if got := slices.Collect(g.Nodes()); !slices.Equal(got, names("A", "B", "C")) {
		t.Errorf("expected discovery order, got %v", got)
	}
}

func TestDependencyGraph_RemoveNode(t *testing.T) {
	g := domain.NewDependencyGraph()
	a, b := domain.NewUnitName("A"), domain.NewUnitName("B")
	g.AddEdge(a, b)

	g.RemoveNode(b)

	if g.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", g.Len())
	}
	if len(g.Edges(a)) != 0 {
		t.Errorf("expected dangling edge to be removed, got %v", g.Edges(a))
	}
}

func TestDependencyGraph_PathTo(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddEdge(domain.NewUnitName("app.Main"), domain.NewUnitName("app.Helper"))
	g.AddEdge(domain.NewUnitName("app.Helper"), domain.NewUnitName("lib.Base"))
	g.AddEdge(domain.NewUnitName("lib.Base"), domain.NewUnitName("app.Main"))
	g.AddEdge(domain.NewUnitName("app.Main"), domain.NewUnitName("lib.Util"))
	g.AddEdge(domain.NewUnitName("lib.Util"), domain.NewUnitName("lib.Base"))

	path, err := g.PathTo(domain.NewUnitName("app.Main"), domain.NewUnitName("lib.Base"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := names("app.Main", "app.Helper", "lib.Base")
	if !slices.Equal(path, want) {
		t.Errorf("got %v, want %v", path, want)
	}

	self, err := g.PathTo(domain.NewUnitName("app.Main"), domain.NewUnitName("app.Main"))
	if err != nil || !slices.Equal(self, names("app.Main")) {
		t.Errorf("expected trivial path, got %v, %v", self, err)
	}
}

func TestDependencyGraph_PathTo_Unreachable(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddEdge(domain.NewUnitName("A"), domain.NewUnitName("B"))
	g.AddNode(domain.NewUnitName("C"))

	_, err := g.PathTo(domain.NewUnitName("A"), domain.NewUnitName("C"))
	if !errors.Is(err, domain.ErrNoPathFound) {
		t.Fatalf("expected ErrNoPathFound, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if to, _ := zErr.Metadata()["to"].(string); to != "C" {
		t.Errorf("expected metadata to=C, got %v", zErr.Metadata()["to"])
	}
}
