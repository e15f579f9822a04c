package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/carton/internal/core/domain"
)

func TestClosure_AddAndDrop(t *testing.T) {
	root := domain.NewUnitName("app.Main")
	c := domain.NewClosure([]domain.UnitName{root})

	c.Add(root, []byte{1})
	c.Add(domain.NewUnitName("lib.Base"), []byte{2})
	c.Graph().AddEdge(root, domain.NewUnitName("lib.Base"))
	c.Graph().AddEdge(root, domain.NewUnitName("lib.Gone"))

	cause := errors.New("not on classpath")
	c.Drop(domain.NewUnitName("lib.Gone"), cause)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, names("app.Main", "lib.Base"), c.Names())
	assert.Equal(t, names("lib.Gone"), c.Missing())
	assert.True(t, c.IsMissing(domain.NewUnitName("lib.Gone")))
	assert.Equal(t, cause, c.MissingCause(domain.NewUnitName("lib.Gone")))
	assert.False(t, c.Contains(domain.NewUnitName("lib.Gone")))
	assert.Equal(t, names("lib.Base"), c.Graph().Edges(root))

	payload, ok := c.Payload(domain.NewUnitName("lib.Base"))
	assert.True(t, ok)
	assert.Equal(t, []byte{2}, payload)
}

func TestClosure_PayloadsIsCopy(t *testing.T) {
	c := domain.NewClosure(nil)
	c.Add(domain.NewUnitName("A"), []byte{1})

	p := c.Payloads()
	delete(p, domain.NewUnitName("A"))

	assert.True(t, c.Contains(domain.NewUnitName("A")))
}
