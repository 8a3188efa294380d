package ccgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitiveModificationPropagator_DirectWrite(t *testing.T) {
	p := NewTransitiveModificationPropagator()
	p.DeclareFunction("setSpeed", []string{"motor", "value"})
	p.RecordWrite("setSpeed", "motor")
	p.Propagate()

	assert.True(t, p.IsWritten("setSpeed", "motor"))
	assert.False(t, p.IsWritten("setSpeed", "value"))
}

func TestTransitiveModificationPropagator_TransitiveFixedPoint(t *testing.T) {
	p := NewTransitiveModificationPropagator()
	p.DeclareFunction("innerWrite", []string{"target"})
	p.DeclareFunction("middle", []string{"m"})
	p.DeclareFunction("outer", []string{"o"})

	p.RecordWrite("innerWrite", "target")

	// outer calls middle(o), middle calls innerWrite(m).
	p.RecordCall("outer", CallSite{Callee: "middle", ArgParamNames: []string{"o"}})
	p.RecordCall("middle", CallSite{Callee: "innerWrite", ArgParamNames: []string{"m"}})

	p.Propagate()

	assert.True(t, p.IsWritten("innerWrite", "target"))
	assert.True(t, p.IsWritten("middle", "m"))
	assert.True(t, p.IsWritten("outer", "o"))
}

func TestTransitiveModificationPropagator_CycleSafe(t *testing.T) {
	p := NewTransitiveModificationPropagator()
	p.DeclareFunction("a", []string{"x"})
	p.DeclareFunction("b", []string{"y"})

	// Mutual recursion: a calls b, b calls a, neither ever writes
	// directly. Propagate must terminate and find nothing written.
	p.RecordCall("a", CallSite{Callee: "b", ArgParamNames: []string{"x"}})
	p.RecordCall("b", CallSite{Callee: "a", ArgParamNames: []string{"y"}})

	// Propagate must terminate on its own (bounded by the number of
	// (function, parameter) pairs) even though a calls b calls a.
	p.Propagate()

	assert.False(t, p.IsWritten("a", "x"))
	assert.False(t, p.IsWritten("b", "y"))
}

func TestTransitiveModificationPropagator_ArgumentNotAParameterIgnored(t *testing.T) {
	p := NewTransitiveModificationPropagator()
	p.DeclareFunction("writer", []string{"target"})
	p.DeclareFunction("caller", []string{"p"})

	p.RecordWrite("writer", "target")
	// caller passes a literal/local (not one of its own parameters) at
	// position 0, represented by "" per BuildCallSite's contract.
	p.RecordCall("caller", CallSite{Callee: "writer", ArgParamNames: []string{""}})

	p.Propagate()

	assert.False(t, p.IsWritten("caller", "p"))
}
