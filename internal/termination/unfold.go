package termination

import (
	"go.uber.org/zap"

	"github.com/lhaig/predterm/internal/ir"
)

// RewriteUnfold replaces one unfold statement by a scoped block that
// captures the unfolded instance, performs the original unfold and then
// assumes the nested facts of the predicate body:
//
//	{
//	    var P_123: PredicateInstance
//	    P_123 := PI_P(args)
//	    unfold acc(P(args), perm)
//	    <nested facts of P's body with formals replaced by args>
//	}
//
// When the instance domain or the nested function is not declared, each
// missing declaration is reported and the site degrades to an empty block
// (or to the bare unfold, if configured).
func (p *Pass) RewriteUnfold(u *ir.Unfold) ir.Stmt {
	if !p.checkPrerequisites(u.Pos) {
		if p.cfg.KeepUnfoldWhenDegraded {
			return &ir.Seqn{Stmts: []ir.Stmt{u}, Pos: u.Pos}
		}
		return skip(u.Pos)
	}

	acc := u.Acc.Loc
	pred := p.predicate(acc.Name, u.Pos)
	decl, capture := p.capture(acc, u.Pos)

	var facts ir.Stmt = skip(u.Pos)
	if pred.Body != nil {
		body := ir.Substitute(pred.Body, ir.Bind(pred.Formals, acc.Args))
		facts = p.nested(body, decl.Var(), u.Acc.Perm, u.Pos)
	}

	p.logger.Debug("rewrote unfold",
		zap.String("predicate", pred.Name),
		zap.String("instance", decl.Name),
		zap.Stringer("pos", u.Pos),
	)

	return &ir.Seqn{
		Stmts:  []ir.Stmt{capture, u, facts},
		Scoped: []*ir.LocalVarDecl{decl},
		Pos:    u.Pos,
	}
}

// checkPrerequisites reports every missing background declaration at pos
// and returns whether all are present.
func (p *Pass) checkPrerequisites(pos ir.Position) bool {
	ok := true
	if fn, _ := p.prog.FindDomainFunction(p.cfg.NestedFunction); fn == nil {
		p.report(missingNestedFunction, pos)
		ok = false
	}
	if p.prog.FindDomain(p.cfg.InstanceDomain) == nil {
		p.report(missingInstanceDomain, pos)
		ok = false
	}
	return ok
}
