package linter

import (
	"github.com/lhaig/predterm/internal/diagnostic"
	"github.com/lhaig/predterm/internal/ir"
)

// Linter performs termination-related checks on a program.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	prog *ir.Program
	diag *diagnostic.Diagnostics

	unfolded map[string]bool
}

// Lint runs all lint rules on the given program and returns diagnostics.
func Lint(prog *ir.Program) *diagnostic.Diagnostics {
	l := &Linter{
		prog:     prog,
		diag:     diagnostic.New(),
		unfolded: make(map[string]bool),
	}

	l.lintMethods()
	l.lintPredicates()

	return l.diag
}

// lintMethods checks every unfold statement in method bodies.
func (l *Linter) lintMethods() {
	for _, m := range l.prog.Methods {
		if m.Body != nil {
			l.walkStmt(m.Body)
		}
	}
}

func (l *Linter) walkStmt(s ir.Stmt) {
	switch stmt := s.(type) {
	case *ir.Seqn:
		for _, child := range stmt.Stmts {
			l.walkStmt(child)
		}
	case *ir.If:
		if stmt.Then != nil {
			l.walkStmt(stmt.Then)
		}
		if stmt.Else != nil {
			l.walkStmt(stmt.Else)
		}
	case *ir.While:
		if stmt.Body != nil {
			l.walkStmt(stmt.Body)
		}
	case *ir.Unfold:
		l.checkAbstractUnfold(stmt)
	}
}

// checkAbstractUnfold warns when an abstract predicate is unfolded: its
// body is unknown, so no nested facts can be recorded for it.
func (l *Linter) checkAbstractUnfold(u *ir.Unfold) {
	if u.Acc == nil || u.Acc.Loc == nil {
		return
	}
	name := u.Acc.Loc.Name
	l.unfolded[name] = true

	pred := l.prog.FindPredicate(name)
	if pred != nil && pred.Body == nil {
		l.diag.WarningWithHint(diagnostic.Lint, u.Pos,
			"unfolding abstract predicate '"+name+"' records no nested predicates",
			"give '"+name+"' a body or drop the unfold",
		)
	}
}

// lintPredicates checks predicate declarations. It must run after
// lintMethods, which records the unfolded predicates.
func (l *Linter) lintPredicates() {
	for _, pred := range l.prog.Predicates {
		if pred.Body == nil {
			continue
		}
		if !l.unfolded[pred.Name] {
			l.diag.Warningf(diagnostic.Lint, pred.Pos,
				"predicate '%s' is never unfolded", pred.Name)
		}
		if unguardedSelfReference(pred.Name, pred.Body) {
			l.diag.WarningWithHint(diagnostic.Lint, pred.Pos,
				"recursive occurrence of predicate '"+pred.Name+"' is not guarded by a condition",
				"guard the recursive acc("+pred.Name+"(...)) with an implication or conditional",
			)
		}
	}
}

// unguardedSelfReference reports whether body reaches a permission to the
// predicate name outside of any implication or conditional.
func unguardedSelfReference(name string, body ir.Expr) bool {
	switch e := body.(type) {
	case *ir.PredicateAccessPredicate:
		return e.Loc != nil && e.Loc.Name == name
	case *ir.BinaryExpr:
		return unguardedSelfReference(name, e.Left) || unguardedSelfReference(name, e.Right)
	case *ir.UnaryExpr:
		return unguardedSelfReference(name, e.Operand)
	default:
		// implications and conditionals guard their sub-assertions
		return false
	}
}
