package termination

import (
	"hash/fnv"
	"strconv"

	"go.uber.org/zap"

	"github.com/lhaig/predterm/internal/formatter"
	"github.com/lhaig/predterm/internal/ir"
)

// InstanceFunction returns the ghost function denoting instances of pred,
// synthesizing it on first use. The function takes exactly the predicate's
// formals, returns a value of the instance domain and requires wildcard
// permission to pred applied to its formals. Later calls for the same
// predicate name return the same *ir.Function.
//
// The instance domain must be declared; RewriteUnfold checks this before
// calling.
func (p *Pass) InstanceFunction(pred *ir.Predicate) *ir.Function {
	if fn, ok := p.instances[pred.Name]; ok {
		return fn
	}

	formals := make([]*ir.LocalVarDecl, len(pred.Formals))
	for i, f := range pred.Formals {
		formals[i] = &ir.LocalVarDecl{Name: f.Name, Type: f.Type}
	}

	fn := &ir.Function{
		Name:    p.oracle.FreshIdentifier(p.cfg.InstanceFunctionPrefix + pred.Name),
		Formals: formals,
		Result:  p.instanceType(),
		Pres: []ir.Expr{&ir.PredicateAccessPredicate{
			Loc:  &ir.PredicateAccess{Name: pred.Name, Args: ir.Formals(formals)},
			Perm: &ir.WildcardPerm{},
		}},
		Pos: pred.Pos,
	}

	p.instances[pred.Name] = fn
	p.synthesized = append(p.synthesized, fn)
	p.logger.Debug("synthesized instance function",
		zap.String("predicate", pred.Name),
		zap.String("function", fn.Name),
	)
	return fn
}

func (p *Pass) instanceType() *ir.Type {
	return ir.DomainType(p.cfg.InstanceDomain)
}

// predicate looks up a predicate that a well-formed program must declare.
func (p *Pass) predicate(name string, pos ir.Position) *ir.Predicate {
	pred := p.prog.FindPredicate(name)
	if pred == nil {
		violate(UnknownPredicate, pos, "predicate %q is not declared", name)
	}
	return pred
}

// capture declares a fresh instance variable for acc and assigns it the
// instance of acc.
func (p *Pass) capture(acc *ir.PredicateAccess, pos ir.Position) (*ir.LocalVarDecl, *ir.LocalVarAssign) {
	fn := p.InstanceFunction(p.predicate(acc.Name, pos))

	decl := &ir.LocalVarDecl{
		Name: p.locals.Fresh(instanceVarBase(acc)),
		Type: p.instanceType(),
	}
	assign := &ir.LocalVarAssign{
		Target: decl.Var(),
		Value:  &ir.FuncApp{Name: fn.Name, Args: acc.Args, Type: fn.Result},
		Pos:    pos,
	}
	return decl, assign
}

// instanceVarBase derives a variable name from the predicate name and its
// arguments so that distinct call sites stay distinguishable in the output.
func instanceVarBase(acc *ir.PredicateAccess) string {
	h := fnv.New32a()
	h.Write([]byte(formatter.Exprs(acc.Args)))
	return acc.Name + "_" + strconv.FormatUint(uint64(h.Sum32()), 10)
}
