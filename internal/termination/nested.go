package termination

import (
	"github.com/lhaig/predterm/internal/formatter"
	"github.com/lhaig/predterm/internal/ir"
)

// NestedFacts returns ghost code assuming nestedPredicates(callee, caller)
// for every predicate instance reachable in body. The statement mirrors the
// conditional structure of body, so each fact is only assumed under the
// guard that makes the corresponding permission reachable. perm is the
// permission amount of the unfolding the body came from.
//
// A magic wand in body aborts the pass with an *InvariantError.
func (p *Pass) NestedFacts(body ir.Expr, caller *ir.LocalVar, perm ir.Expr) ir.Stmt {
	return p.nested(body, caller, perm, ir.Position{})
}

func (p *Pass) nested(e ir.Expr, caller *ir.LocalVar, perm ir.Expr, pos ir.Position) ir.Stmt {
	switch expr := e.(type) {
	case *ir.FieldAccessPredicate:
		return skip(pos)

	case *ir.PredicateAccessPredicate:
		decl, capture := p.capture(expr.Loc, pos)
		return &ir.Seqn{
			Stmts:  []ir.Stmt{capture, p.assumeNested(decl.Var(), caller, pos)},
			Scoped: []*ir.LocalVarDecl{decl},
			Pos:    pos,
		}

	case *ir.MagicWand:
		violate(MagicWandInBody, pos, "%s", formatter.Expr(expr))
		return nil

	case *ir.CondExpr:
		then := p.nested(expr.Then, caller, perm, pos)
		els := p.nested(expr.Else, caller, perm, pos)
		if isEmpty(then) && isEmpty(els) {
			return skip(pos)
		}
		return &ir.If{Cond: expr.Cond, Then: block(then, pos), Else: block(els, pos), Pos: pos}

	case *ir.Implies:
		then := p.nested(expr.Right, caller, perm, pos)
		if isEmpty(then) {
			return skip(pos)
		}
		return &ir.If{Cond: expr.Left, Then: block(then, pos), Pos: pos}

	case *ir.BinaryExpr:
		return concat(pos, p.nested(expr.Left, caller, perm, pos), p.nested(expr.Right, caller, perm, pos))

	case *ir.UnaryExpr:
		return p.nested(expr.Operand, caller, perm, pos)

	default:
		return skip(pos)
	}
}

// assumeNested builds assume nestedPredicates(callee, caller). Every type
// variable of the owning domain is instantiated with the instance domain.
func (p *Pass) assumeNested(callee, caller *ir.LocalVar, pos ir.Position) ir.Stmt {
	app := &ir.DomainFuncApp{
		Name: p.cfg.NestedFunction,
		Args: []ir.Expr{callee, caller},
		Type: ir.TypeBool,
	}
	if fn, dom := p.prog.FindDomainFunction(p.cfg.NestedFunction); fn != nil {
		app.Type = fn.Result
		if len(dom.TypeVars) > 0 {
			app.TypeVarMap = make(map[string]*ir.Type, len(dom.TypeVars))
			for _, tv := range dom.TypeVars {
				app.TypeVarMap[tv] = p.instanceType()
			}
		}
	}
	return &ir.Assume{Expr: app, Pos: pos}
}

// skip is the statement that does nothing.
func skip(pos ir.Position) *ir.Seqn {
	return &ir.Seqn{Pos: pos}
}

func isEmpty(s ir.Stmt) bool {
	block, ok := s.(*ir.Seqn)
	return ok && len(block.Stmts) == 0 && len(block.Scoped) == 0
}

// block wraps s in a Seqn unless it already is one.
func block(s ir.Stmt, pos ir.Position) *ir.Seqn {
	if b, ok := s.(*ir.Seqn); ok {
		return b
	}
	return &ir.Seqn{Stmts: []ir.Stmt{s}, Pos: pos}
}

// concat sequences statements, dropping empty ones and splicing unscoped
// blocks. A single remaining statement is returned as is.
func concat(pos ir.Position, stmts ...ir.Stmt) ir.Stmt {
	out := &ir.Seqn{Pos: pos}
	for _, s := range stmts {
		if isEmpty(s) {
			continue
		}
		if b, ok := s.(*ir.Seqn); ok && len(b.Scoped) == 0 {
			out.Stmts = append(out.Stmts, b.Stmts...)
			continue
		}
		out.Stmts = append(out.Stmts, s)
	}
	if len(out.Stmts) == 1 {
		return out.Stmts[0]
	}
	return out
}
