package ir

import (
	"fmt"
)

// Validate checks a program for well-formedness and returns a list of error
// messages. An empty slice indicates the program is valid.
func Validate(prog *Program) []string {
	v := &validator{prog: prog}

	v.checkDuplicates()

	for _, d := range prog.Domains {
		for _, fn := range d.Functions {
			if fn.Result == nil {
				v.errorf("domain %s function %s has nil Result", d.Name, fn.Name)
			}
			v.checkDecls(fn.Formals, fmt.Sprintf("domain %s function %s", d.Name, fn.Name))
		}
	}

	for _, fn := range prog.Functions {
		context := fmt.Sprintf("function %s", fn.Name)
		if fn.Result == nil {
			v.errorf("%s has nil Result", context)
		}
		v.checkDecls(fn.Formals, context)
		v.checkExprs(fn.Pres, context+" requires")
		v.checkExprs(fn.Posts, context+" ensures")
		if fn.Body != nil {
			v.checkExpr(fn.Body, context+" body")
		}
	}

	for _, pred := range prog.Predicates {
		context := fmt.Sprintf("predicate %s", pred.Name)
		v.checkDecls(pred.Formals, context)
		if pred.Body != nil {
			v.checkExpr(pred.Body, context+" body")
		}
	}

	for _, m := range prog.Methods {
		context := fmt.Sprintf("method %s", m.Name)
		v.checkDecls(m.Formals, context)
		v.checkDecls(m.Returns, context+" returns")
		v.checkExprs(m.Pres, context+" requires")
		v.checkExprs(m.Posts, context+" ensures")
		if m.Body != nil {
			v.checkStmt(m.Body, context)
		}
	}

	return v.errors
}

type validator struct {
	prog   *Program
	errors []string
}

func (v *validator) errorf(format string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

// checkDuplicates reports top-level names declared more than once within a
// declaration kind.
func (v *validator) checkDuplicates() {
	dup := func(kind string, names []string) {
		seen := make(map[string]bool)
		for _, n := range names {
			if seen[n] {
				v.errorf("duplicate %s %q", kind, n)
			}
			seen[n] = true
		}
	}

	var names []string
	for _, d := range v.prog.Domains {
		names = append(names, d.Name)
	}
	dup("domain", names)

	names = nil
	for _, f := range v.prog.Fields {
		names = append(names, f.Name)
	}
	dup("field", names)

	// functions and domain functions share one namespace
	names = nil
	for _, f := range v.prog.Functions {
		names = append(names, f.Name)
	}
	for _, d := range v.prog.Domains {
		for _, f := range d.Functions {
			names = append(names, f.Name)
		}
	}
	dup("function", names)

	names = nil
	for _, p := range v.prog.Predicates {
		names = append(names, p.Name)
	}
	dup("predicate", names)

	names = nil
	for _, m := range v.prog.Methods {
		names = append(names, m.Name)
	}
	dup("method", names)
}

func (v *validator) checkDecls(decls []*LocalVarDecl, context string) {
	seen := make(map[string]bool)
	for i, d := range decls {
		if d.Type == nil {
			v.errorf("%s: parameter %d (%s) has nil Type", context, i, d.Name)
		}
		if seen[d.Name] {
			v.errorf("%s: duplicate parameter %q", context, d.Name)
		}
		seen[d.Name] = true
	}
}

func (v *validator) checkStmts(stmts []Stmt, context string) {
	for i, stmt := range stmts {
		v.checkStmt(stmt, fmt.Sprintf("%s statement %d", context, i))
	}
}

// checkStmt checks a single statement.
func (v *validator) checkStmt(stmt Stmt, context string) {
	switch s := stmt.(type) {
	case *Seqn:
		v.checkStmts(s.Stmts, context)

	case *LocalVarAssign:
		if s.Target == nil {
			v.errorf("%s: LocalVarAssign has nil Target", context)
		}
		v.checkExpr(s.Value, context)

	case *FieldAssign:
		if s.Target == nil {
			v.errorf("%s: FieldAssign has nil Target", context)
		} else {
			v.checkExpr(s.Target, context)
		}
		v.checkExpr(s.Value, context)

	case *Unfold:
		v.checkAccess(s.Acc, "Unfold", context)

	case *Fold:
		v.checkAccess(s.Acc, "Fold", context)

	case *Inhale:
		v.checkExpr(s.Expr, context)
	case *Exhale:
		v.checkExpr(s.Expr, context)
	case *Assert:
		v.checkExpr(s.Expr, context)
	case *Assume:
		v.checkExpr(s.Expr, context)

	case *If:
		v.checkExpr(s.Cond, context)
		if s.Then == nil {
			v.errorf("%s: If has nil Then", context)
		} else {
			v.checkStmt(s.Then, context+" (then)")
		}
		if s.Else != nil {
			v.checkStmt(s.Else, context+" (else)")
		}

	case *While:
		v.checkExpr(s.Cond, context)
		v.checkExprs(s.Invariants, context+" (while invariants)")
		if s.Body == nil {
			v.errorf("%s: While has nil Body", context)
		} else {
			v.checkStmt(s.Body, context+" (while body)")
		}

	default:
		v.errorf("%s: unknown statement type %T", context, stmt)
	}
}

func (v *validator) checkAccess(acc *PredicateAccessPredicate, kind, context string) {
	if acc == nil || acc.Loc == nil {
		v.errorf("%s: %s has nil predicate access", context, kind)
		return
	}
	v.checkExpr(acc, context)
}

func (v *validator) checkExprs(exprs []Expr, context string) {
	for i, e := range exprs {
		v.checkExpr(e, fmt.Sprintf("%s %d", context, i))
	}
}

// checkExpr checks an expression for validity.
func (v *validator) checkExpr(expr Expr, context string) {
	if expr == nil {
		v.errorf("%s: nil expression", context)
		return
	}

	switch e := expr.(type) {
	case *FieldAccess:
		if v.prog.FindField(e.Field) == nil {
			v.errorf("%s: unknown field %q", context, e.Field)
		}
		v.checkExpr(e.Receiver, context)

	case *PredicateAccess:
		pred := v.prog.FindPredicate(e.Name)
		if pred == nil {
			v.errorf("%s: unknown predicate %q", context, e.Name)
		} else if len(pred.Formals) != len(e.Args) {
			v.errorf("%s: predicate %s expects %d arguments, got %d", context, e.Name, len(pred.Formals), len(e.Args))
		}
		v.checkArgs(e.Args, context)

	case *FieldAccessPredicate:
		if e.Loc == nil {
			v.errorf("%s: FieldAccessPredicate has nil Loc", context)
		} else {
			v.checkExpr(e.Loc, context)
		}
		v.checkExpr(e.Perm, context)

	case *PredicateAccessPredicate:
		if e.Loc == nil {
			v.errorf("%s: PredicateAccessPredicate has nil Loc", context)
		} else {
			v.checkExpr(e.Loc, context)
		}
		v.checkExpr(e.Perm, context)

	case *MagicWand:
		v.checkExpr(e.Left, context)
		v.checkExpr(e.Right, context)

	case *CondExpr:
		v.checkExpr(e.Cond, context)
		v.checkExpr(e.Then, context)
		v.checkExpr(e.Else, context)

	case *Implies:
		v.checkExpr(e.Left, context)
		v.checkExpr(e.Right, context)

	case *BinaryExpr:
		v.checkExpr(e.Left, context)
		v.checkExpr(e.Right, context)

	case *UnaryExpr:
		v.checkExpr(e.Operand, context)

	case *FuncApp:
		if fn := v.prog.FindFunction(e.Name); fn == nil {
			v.errorf("%s: unknown function %q", context, e.Name)
		} else if len(fn.Formals) != len(e.Args) {
			v.errorf("%s: function %s expects %d arguments, got %d", context, e.Name, len(fn.Formals), len(e.Args))
		}
		v.checkArgs(e.Args, context)

	case *DomainFuncApp:
		if fn, _ := v.prog.FindDomainFunction(e.Name); fn == nil {
			v.errorf("%s: unknown domain function %q", context, e.Name)
		}
		v.checkArgs(e.Args, context)

	case *FractionalPerm:
		v.checkExpr(e.Num, context)
		v.checkExpr(e.Den, context)

	case *LocalVar:
		if e.Type == nil {
			v.errorf("%s: variable %s has nil Type", context, e.Name)
		}

	case *IntLit, *BoolLit, *NullLit, *FullPerm, *NoPerm, *WildcardPerm:
		// No validation needed for leaf nodes

	default:
		v.errorf("%s: unknown expression type %T", context, expr)
	}
}

func (v *validator) checkArgs(args []Expr, context string) {
	for i, arg := range args {
		v.checkExpr(arg, fmt.Sprintf("%s (arg %d)", context, i))
	}
}
