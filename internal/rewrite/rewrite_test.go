package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/predterm/internal/ir"
)

func assume(v bool) *ir.Assume {
	return &ir.Assume{Expr: &ir.BoolLit{Value: v}}
}

// flip replaces assume true by assume false and leaves everything else.
func flip(s ir.Stmt) ir.Stmt {
	if a, ok := s.(*ir.Assume); ok {
		if lit, ok := a.Expr.(*ir.BoolLit); ok && lit.Value {
			return assume(false)
		}
	}
	return s
}

func TestStmtRewritesNestedStatements(t *testing.T) {
	t.Parallel()

	in := &ir.Seqn{Stmts: []ir.Stmt{
		&ir.If{
			Cond: &ir.BoolLit{Value: true},
			Then: &ir.Seqn{Stmts: []ir.Stmt{assume(true)}},
			Else: &ir.Seqn{Stmts: []ir.Stmt{
				&ir.While{Cond: &ir.BoolLit{Value: true}, Body: &ir.Seqn{Stmts: []ir.Stmt{assume(true)}}},
			}},
		},
	}}

	out := Stmt(in, flip).(*ir.Seqn)

	cond := out.Stmts[0].(*ir.If)
	assert.False(t, cond.Then.Stmts[0].(*ir.Assume).Expr.(*ir.BoolLit).Value)
	loop := cond.Else.Stmts[0].(*ir.While)
	assert.False(t, loop.Body.Stmts[0].(*ir.Assume).Expr.(*ir.BoolLit).Value)

	// the input is untouched
	origCond := in.Stmts[0].(*ir.If)
	assert.True(t, origCond.Then.Stmts[0].(*ir.Assume).Expr.(*ir.BoolLit).Value)
	assert.NotSame(t, in, out)
}

func TestStmtIsBottomUp(t *testing.T) {
	t.Parallel()

	var order []string
	record := func(s ir.Stmt) ir.Stmt {
		switch s.(type) {
		case *ir.Assume:
			order = append(order, "assume")
		case *ir.If:
			order = append(order, "if")
		case *ir.Seqn:
			order = append(order, "seqn")
		}
		return s
	}

	Stmt(&ir.Seqn{Stmts: []ir.Stmt{
		&ir.If{Cond: &ir.BoolLit{Value: true}, Then: &ir.Seqn{Stmts: []ir.Stmt{assume(true)}}},
	}}, record)

	assert.Equal(t, []string{"assume", "if", "seqn"}, order)
}

func TestStmtDoesNotRevisitReplacement(t *testing.T) {
	t.Parallel()

	calls := 0
	wrap := func(s ir.Stmt) ir.Stmt {
		if _, ok := s.(*ir.Assume); ok {
			calls++
			return &ir.Seqn{Stmts: []ir.Stmt{s, s}}
		}
		return s
	}

	out := Stmt(&ir.Seqn{Stmts: []ir.Stmt{assume(true)}}, wrap).(*ir.Seqn)
	assert.Equal(t, 1, calls)
	require.Len(t, out.Stmts, 1)
	assert.Len(t, out.Stmts[0].(*ir.Seqn).Stmts, 2)
}

func TestProgram(t *testing.T) {
	t.Parallel()

	fn := &ir.Function{Name: "f", Result: ir.TypeBool}
	prog := &ir.Program{
		Functions: []*ir.Function{fn},
		Methods: []*ir.Method{
			{Name: "m", Body: &ir.Seqn{Stmts: []ir.Stmt{assume(true)}}},
			{Name: "abstract"},
		},
	}

	out := Program(prog, flip)

	require.Len(t, out.Methods, 2)
	assert.False(t, out.Methods[0].Body.Stmts[0].(*ir.Assume).Expr.(*ir.BoolLit).Value)
	assert.Nil(t, out.Methods[1].Body)
	assert.NotSame(t, prog.Methods[0], out.Methods[0])

	// appending to the output does not grow the input
	out.Functions = append(out.Functions, &ir.Function{Name: "g"})
	assert.Len(t, prog.Functions, 1)
	assert.True(t, prog.Methods[0].Body.Stmts[0].(*ir.Assume).Expr.(*ir.BoolLit).Value)
}

func TestMethodWrapsNonBlockResult(t *testing.T) {
	t.Parallel()

	replace := func(s ir.Stmt) ir.Stmt {
		if _, ok := s.(*ir.Seqn); ok {
			return assume(false)
		}
		return s
	}
	m := Method(&ir.Method{Name: "m", Body: &ir.Seqn{}}, replace)

	require.Len(t, m.Body.Stmts, 1)
	_, ok := m.Body.Stmts[0].(*ir.Assume)
	assert.True(t, ok)
}
