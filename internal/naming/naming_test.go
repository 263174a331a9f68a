package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lhaig/predterm/internal/ir"
)

func TestAllocatorFresh(t *testing.T) {
	t.Parallel()

	a := NewAllocator("x", "list_1", "list_10")

	assert.Equal(t, "y", a.Fresh("y"))
	assert.Equal(t, "x0", a.Fresh("x"))
	assert.Equal(t, "x1", a.Fresh("x"))
	assert.Equal(t, "list_11", a.Fresh("list_1"))
	assert.True(t, a.Used("x1"))
	assert.False(t, a.Used("x2"))
	assert.Equal(t, 7, a.Len())
}

func TestAllocatorReserve(t *testing.T) {
	t.Parallel()

	a := NewAllocator()
	a.Reserve("v", "v0")
	assert.Equal(t, "v1", a.Fresh("v"))
}

func TestCollect(t *testing.T) {
	t.Parallel()

	prog := &ir.Program{
		Domains: []*ir.Domain{{
			Name:     "Order",
			TypeVars: []string{"T"},
			Functions: []*ir.DomainFunc{{
				Name:    "below",
				Formals: []*ir.LocalVarDecl{{Name: "l1", Type: ir.DomainType("T")}},
				Result:  ir.TypeBool,
			}},
		}},
		Fields:     []*ir.Field{{Name: "next", Type: ir.TypeRef}},
		Functions:  []*ir.Function{{Name: "len", Formals: []*ir.LocalVarDecl{{Name: "n", Type: ir.TypeRef}}, Result: ir.TypeInt}},
		Predicates: []*ir.Predicate{{Name: "list", Formals: []*ir.LocalVarDecl{{Name: "x", Type: ir.TypeRef}}}},
		Methods: []*ir.Method{{
			Name:    "m",
			Formals: []*ir.LocalVarDecl{{Name: "a", Type: ir.TypeRef}},
			Returns: []*ir.LocalVarDecl{{Name: "res", Type: ir.TypeInt}},
			Body: &ir.Seqn{
				Scoped: []*ir.LocalVarDecl{{Name: "tmp", Type: ir.TypeInt}},
				Stmts: []ir.Stmt{
					&ir.If{
						Cond: &ir.BoolLit{Value: true},
						Then: &ir.Seqn{Scoped: []*ir.LocalVarDecl{{Name: "inThen", Type: ir.TypeInt}}},
						Else: &ir.Seqn{Stmts: []ir.Stmt{&ir.LocalVarAssign{
							Target: &ir.LocalVar{Name: "assigned", Type: ir.TypeInt},
							Value:  &ir.IntLit{Value: 1},
						}}},
					},
					&ir.While{
						Cond: &ir.BoolLit{Value: false},
						Body: &ir.Seqn{Scoped: []*ir.LocalVarDecl{{Name: "inLoop", Type: ir.TypeInt}}},
					},
				},
			},
		}},
	}

	want := []string{
		"Order", "T", "a", "assigned", "below", "inLoop", "inThen",
		"l1", "len", "list", "m", "n", "next", "res", "tmp", "x",
	}
	assert.Equal(t, want, Collect(prog))
}

func TestProgramOracle(t *testing.T) {
	t.Parallel()

	prog := &ir.Program{
		Functions: []*ir.Function{{Name: "PI_list", Result: ir.TypeInt}, {Name: "PI_list_0", Result: ir.TypeInt}},
	}
	o := NewProgramOracle(prog)

	assert.Equal(t, "PI_tree", o.FreshIdentifier("PI_tree"))
	assert.Equal(t, "PI_tree_0", o.FreshIdentifier("PI_tree"))
	assert.Equal(t, "PI_list_1", o.FreshIdentifier("PI_list"))

	var _ Oracle = o
}
