package termination

import (
	"github.com/lhaig/predterm/internal/ir"
)

// Builders for small programs over a linked list of Refs.

func refDecl(name string) *ir.LocalVarDecl {
	return &ir.LocalVarDecl{Name: name, Type: ir.TypeRef}
}

func ref(name string) *ir.LocalVar {
	return &ir.LocalVar{Name: name, Type: ir.TypeRef}
}

func field(recv ir.Expr, name string) *ir.FieldAccess {
	return &ir.FieldAccess{Receiver: recv, Field: name, Type: ir.TypeRef}
}

func accField(recv ir.Expr, name string) *ir.FieldAccessPredicate {
	return &ir.FieldAccessPredicate{Loc: field(recv, name), Perm: &ir.FullPerm{}}
}

func accPred(name string, args ...ir.Expr) *ir.PredicateAccessPredicate {
	return &ir.PredicateAccessPredicate{
		Loc:  &ir.PredicateAccess{Name: name, Args: args},
		Perm: &ir.FullPerm{},
	}
}

func and(l, r ir.Expr) *ir.BinaryExpr {
	return &ir.BinaryExpr{Left: l, Op: ir.OpAnd, Right: r, Type: ir.TypeBool}
}

func notNull(e ir.Expr) *ir.BinaryExpr {
	return &ir.BinaryExpr{Left: e, Op: ir.OpNe, Right: &ir.NullLit{}, Type: ir.TypeBool}
}

func unfold(name string, args ...ir.Expr) *ir.Unfold {
	return &ir.Unfold{Acc: accPred(name, args...), Pos: ir.Position{File: "list.vpr", Line: 7, Column: 5}}
}

// background declares the instance domain and the nested relation.
func background() []*ir.Domain {
	return []*ir.Domain{
		{Name: "PredicateInstance"},
		{
			Name:     "WellFoundedOrder",
			TypeVars: []string{"T"},
			Functions: []*ir.DomainFunc{{
				Name:    "nestedPredicates",
				Formals: []*ir.LocalVarDecl{{Name: "l1", Type: ir.DomainType("T")}, {Name: "l2", Type: ir.DomainType("T")}},
				Result:  ir.TypeBool,
				Domain:  "WellFoundedOrder",
			}},
		},
	}
}

// listPredicate is
//
//	predicate list(x: Ref) { acc(x.next) && (x.next != null ==> acc(list(x.next))) }
func listPredicate() *ir.Predicate {
	x := ref("x")
	return &ir.Predicate{
		Name:    "list",
		Formals: []*ir.LocalVarDecl{refDecl("x")},
		Body: and(
			accField(x, "next"),
			&ir.Implies{Left: notNull(field(x, "next")), Right: accPred("list", field(x, "next"))},
		),
	}
}

// program wraps a single method m(params) { stmts } together with the
// given domains and predicates.
func program(domains []*ir.Domain, preds []*ir.Predicate, params []string, stmts ...ir.Stmt) *ir.Program {
	formals := make([]*ir.LocalVarDecl, len(params))
	for i, p := range params {
		formals[i] = refDecl(p)
	}
	return &ir.Program{
		Domains:    domains,
		Fields:     []*ir.Field{{Name: "next", Type: ir.TypeRef}},
		Predicates: preds,
		Methods: []*ir.Method{{
			Name:    "m",
			Formals: formals,
			Body:    &ir.Seqn{Stmts: stmts},
		}},
	}
}

func listProgram(stmts ...ir.Stmt) *ir.Program {
	return program(background(), []*ir.Predicate{listPredicate()}, []string{"y"}, stmts...)
}
