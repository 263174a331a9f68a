package formatter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/lhaig/predterm/internal/ir"
)

func TestFormatProgram(t *testing.T) {
	t.Parallel()

	n := &ir.LocalVar{Name: "n", Type: ir.TypeInt}
	prog := &ir.Program{
		Domains: []*ir.Domain{
			{Name: "PredicateInstance"},
			{Name: "Order", TypeVars: []string{"T"}, Functions: []*ir.DomainFunc{{
				Name:    "below",
				Formals: []*ir.LocalVarDecl{{Name: "a", Type: ir.DomainType("T")}, {Name: "b", Type: ir.DomainType("T")}},
				Result:  ir.TypeBool,
			}}},
		},
		Fields: []*ir.Field{{Name: "next", Type: ir.TypeRef}, {Name: "val", Type: ir.TypeInt}},
		Functions: []*ir.Function{{
			Name:    "pos",
			Formals: []*ir.LocalVarDecl{{Name: "n", Type: ir.TypeInt}},
			Result:  ir.TypeBool,
			Pres:    []ir.Expr{&ir.BinaryExpr{Left: n, Op: ir.OpGe, Right: &ir.IntLit{Value: 0}, Type: ir.TypeBool}},
			Body:    &ir.BinaryExpr{Left: n, Op: ir.OpGt, Right: &ir.IntLit{Value: 0}, Type: ir.TypeBool},
		}},
		Predicates: []*ir.Predicate{{Name: "opaque", Formals: []*ir.LocalVarDecl{{Name: "x", Type: ir.TypeRef}}}},
		Methods: []*ir.Method{{
			Name:    "m",
			Formals: []*ir.LocalVarDecl{{Name: "x", Type: ir.TypeRef}},
			Returns: []*ir.LocalVarDecl{{Name: "r", Type: ir.TypeInt}},
			Posts:   []ir.Expr{&ir.BoolLit{Value: true}},
			Body: &ir.Seqn{Stmts: []ir.Stmt{
				&ir.While{Cond: &ir.BoolLit{Value: false}},
			}},
		}},
	}

	want := strings.Join([]string{
		"domain PredicateInstance {}",
		"",
		"domain Order[T] {",
		"    function below(a: T, b: T): Bool",
		"}",
		"",
		"field next: Ref",
		"field val: Int",
		"",
		"function pos(n: Int): Bool",
		"    requires n >= 0",
		"{",
		"    n > 0",
		"}",
		"",
		"predicate opaque(x: Ref)",
		"",
		"method m(x: Ref) returns (r: Int)",
		"    ensures true",
		"{",
		"    while (false)",
		"    {}",
		"}",
		"",
	}, "\n")
	if diff := cmp.Diff(want, Format(prog)); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestExpr(t *testing.T) {
	t.Parallel()

	x := &ir.LocalVar{Name: "x", Type: ir.TypeRef}
	next := &ir.FieldAccess{Receiver: x, Field: "next", Type: ir.TypeRef}
	acc := &ir.PredicateAccessPredicate{Loc: &ir.PredicateAccess{Name: "list", Args: []ir.Expr{next}}, Perm: &ir.WildcardPerm{}}

	tests := []struct {
		name string
		expr ir.Expr
		want string
	}{
		{"nil", nil, "<nil>"},
		{"field access", next, "x.next"},
		{"predicate access", acc, "acc(list(x.next), wildcard)"},
		{"fraction", &ir.FieldAccessPredicate{Loc: next, Perm: &ir.FractionalPerm{Num: &ir.IntLit{Value: 1}, Den: &ir.IntLit{Value: 2}}}, "acc(x.next, 1/2)"},
		{"no permission", &ir.FieldAccessPredicate{Loc: next, Perm: &ir.NoPerm{}}, "acc(x.next, none)"},
		{"implication", &ir.Implies{Left: &ir.BoolLit{Value: true}, Right: acc}, "true ==> acc(list(x.next), wildcard)"},
		{"conditional", &ir.CondExpr{Cond: &ir.BoolLit{Value: true}, Then: &ir.IntLit{Value: 1}, Else: &ir.IntLit{Value: 2}}, "true ? 1 : 2"},
		{"wand", &ir.MagicWand{Left: acc, Right: acc}, "acc(list(x.next), wildcard) --* acc(list(x.next), wildcard)"},
		{"nested binary", &ir.BinaryExpr{
			Left:  &ir.BinaryExpr{Left: &ir.IntLit{Value: 1}, Op: ir.OpAdd, Right: &ir.IntLit{Value: 2}, Type: ir.TypeInt},
			Op:    ir.OpMul,
			Right: &ir.UnaryExpr{Op: ir.OpNeg, Operand: &ir.IntLit{Value: 3}, Type: ir.TypeInt},
			Type:  ir.TypeInt,
		}, "(1 + 2) * -3"},
		{"domain application", &ir.DomainFuncApp{Name: "below", Args: []ir.Expr{x, &ir.NullLit{}}, Type: ir.TypeBool}, "below(x, null)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Expr(tt.expr))
		})
	}
}

func TestStmtIfElse(t *testing.T) {
	t.Parallel()

	x := &ir.LocalVar{Name: "x", Type: ir.TypeRef}
	decl := &ir.LocalVarDecl{Name: "v", Type: ir.DomainType("PredicateInstance")}
	s := &ir.If{
		Cond: &ir.BinaryExpr{Left: x, Op: ir.OpEq, Right: &ir.NullLit{}, Type: ir.TypeBool},
		Then: &ir.Seqn{
			Scoped: []*ir.LocalVarDecl{decl},
			Stmts: []ir.Stmt{
				&ir.LocalVarAssign{Target: decl.Var(), Value: &ir.FuncApp{Name: "PI_list", Args: []ir.Expr{x}}},
			},
		},
		Else: &ir.Seqn{Stmts: []ir.Stmt{
			&ir.FieldAssign{Target: &ir.FieldAccess{Receiver: x, Field: "val", Type: ir.TypeInt}, Value: &ir.IntLit{Value: 0}},
		}},
	}

	want := "if (x == null) {\n" +
		"    var v: PredicateInstance\n" +
		"    v := PI_list(x)\n" +
		"} else {\n" +
		"    x.val := 0\n" +
		"}\n"
	assert.Equal(t, want, Stmt(s))

	s.Else = &ir.Seqn{}
	assert.Equal(t, "if (x == null) {\n    var v: PredicateInstance\n    v := PI_list(x)\n}\n", Stmt(s))
}

func TestExprs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Exprs(nil))
	assert.Equal(t, "1, true", Exprs([]ir.Expr{&ir.IntLit{Value: 1}, &ir.BoolLit{Value: true}}))
}
