package termination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/predterm/internal/formatter"
	"github.com/lhaig/predterm/internal/ir"
)

func TestNestedFacts(t *testing.T) {
	t.Parallel()

	x := ref("x")
	caller := &ir.LocalVar{Name: "c", Type: ir.DomainType("PredicateInstance")}

	tests := []struct {
		name  string
		body  ir.Expr
		check func(t *testing.T, s ir.Stmt)
	}{
		{
			name: "field permission",
			body: accField(x, "next"),
			check: func(t *testing.T, s ir.Stmt) {
				assert.True(t, isEmpty(s))
			},
		},
		{
			name: "pure expression",
			body: notNull(x),
			check: func(t *testing.T, s ir.Stmt) {
				assert.True(t, isEmpty(s))
			},
		},
		{
			name: "predicate permission",
			body: accPred("list", x),
			check: func(t *testing.T, s ir.Stmt) {
				block, ok := s.(*ir.Seqn)
				require.True(t, ok)
				require.Len(t, block.Scoped, 1)
				require.Len(t, block.Stmts, 2)
				assert.Equal(t, "assume nestedPredicates("+block.Scoped[0].Name+", c)\n", formatter.Stmt(block.Stmts[1]))
			},
		},
		{
			name: "conjunction of two predicates",
			body: and(accPred("list", x), accPred("list", field(x, "next"))),
			check: func(t *testing.T, s ir.Stmt) {
				block, ok := s.(*ir.Seqn)
				require.True(t, ok)
				assert.Empty(t, block.Scoped)
				require.Len(t, block.Stmts, 2)
				for _, child := range block.Stmts {
					inner, ok := child.(*ir.Seqn)
					require.True(t, ok)
					assert.Len(t, inner.Scoped, 1)
				}
			},
		},
		{
			name: "conjunction with one empty side",
			body: and(accField(x, "next"), accPred("list", x)),
			check: func(t *testing.T, s ir.Stmt) {
				block, ok := s.(*ir.Seqn)
				require.True(t, ok)
				assert.Len(t, block.Scoped, 1)
			},
		},
		{
			name: "implication",
			body: &ir.Implies{Left: notNull(x), Right: accPred("list", x)},
			check: func(t *testing.T, s ir.Stmt) {
				cond, ok := s.(*ir.If)
				require.True(t, ok)
				assert.Equal(t, "x != null", formatter.Expr(cond.Cond))
				assert.Nil(t, cond.Else)
				assert.Len(t, cond.Then.Scoped, 1)
			},
		},
		{
			name: "implication without predicates",
			body: &ir.Implies{Left: notNull(x), Right: accField(x, "next")},
			check: func(t *testing.T, s ir.Stmt) {
				assert.True(t, isEmpty(s))
			},
		},
		{
			name: "conditional with both branches",
			body: &ir.CondExpr{Cond: notNull(x), Then: accPred("list", field(x, "next")), Else: accPred("list", x)},
			check: func(t *testing.T, s ir.Stmt) {
				cond, ok := s.(*ir.If)
				require.True(t, ok)
				require.NotNil(t, cond.Else)
				assert.Len(t, cond.Then.Scoped, 1)
				assert.Len(t, cond.Else.Scoped, 1)
			},
		},
		{
			name: "conditional with one branch",
			body: &ir.CondExpr{Cond: notNull(x), Then: accPred("list", x), Else: accField(x, "next")},
			check: func(t *testing.T, s ir.Stmt) {
				cond, ok := s.(*ir.If)
				require.True(t, ok)
				assert.Len(t, cond.Then.Scoped, 1)
				assert.True(t, isEmpty(cond.Else))
			},
		},
		{
			name: "conditional without predicates",
			body: &ir.CondExpr{Cond: notNull(x), Then: accField(x, "next"), Else: &ir.BoolLit{Value: true}},
			check: func(t *testing.T, s ir.Stmt) {
				assert.True(t, isEmpty(s))
			},
		},
		{
			name: "negation",
			body: &ir.UnaryExpr{Op: ir.OpNot, Operand: accPred("list", x), Type: ir.TypeBool},
			check: func(t *testing.T, s ir.Stmt) {
				block, ok := s.(*ir.Seqn)
				require.True(t, ok)
				assert.Len(t, block.Scoped, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPass(listProgram())
			tt.check(t, p.NestedFacts(tt.body, caller, &ir.FullPerm{}))
		})
	}
}

func TestNestedFactsMagicWandPanics(t *testing.T) {
	t.Parallel()

	p := NewPass(listProgram())
	wand := &ir.MagicWand{Left: accField(ref("x"), "next"), Right: accPred("list", ref("x"))}

	assert.PanicsWithError(t, "invariant violation at 0:0: magic wand in predicate body: acc(x.next, write) --* acc(list(x), write)", func() {
		p.NestedFacts(wand, ref("c"), &ir.FullPerm{})
	})
}

func TestConcat(t *testing.T) {
	t.Parallel()

	a := &ir.Assume{Expr: &ir.BoolLit{Value: true}}
	b := &ir.Assume{Expr: &ir.BoolLit{Value: false}}
	scoped := &ir.Seqn{Scoped: []*ir.LocalVarDecl{refDecl("v")}, Stmts: []ir.Stmt{b}}

	assert.True(t, isEmpty(concat(ir.Position{}, skip(ir.Position{}), skip(ir.Position{}))))
	assert.Same(t, a, concat(ir.Position{}, skip(ir.Position{}), a))

	spliced := concat(ir.Position{}, &ir.Seqn{Stmts: []ir.Stmt{a, b}}, scoped).(*ir.Seqn)
	require.Len(t, spliced.Stmts, 3)
	assert.Same(t, scoped, spliced.Stmts[2])
}
