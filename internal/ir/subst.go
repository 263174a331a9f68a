package ir

// Bindings maps variable names to the expressions that replace them.
type Bindings map[string]Expr

// Bind pairs formal parameters with actual arguments. Extra entries on
// either side are ignored.
func Bind(formals []*LocalVarDecl, args []Expr) Bindings {
	b := make(Bindings, len(formals))
	for i, f := range formals {
		if i < len(args) {
			b[f.Name] = args[i]
		}
	}
	return b
}

// Substitute returns a copy of e in which every LocalVar bound in b is
// replaced by its binding. The input tree is never modified; unchanged leaves
// may be shared between input and output.
func Substitute(e Expr, b Bindings) Expr {
	if e == nil || len(b) == 0 {
		return e
	}
	switch expr := e.(type) {
	case *LocalVar:
		if repl, ok := b[expr.Name]; ok {
			return repl
		}
		return expr
	case *FieldAccess:
		return substField(expr, b)
	case *PredicateAccess:
		return substPred(expr, b)
	case *FieldAccessPredicate:
		return &FieldAccessPredicate{Loc: substField(expr.Loc, b), Perm: Substitute(expr.Perm, b)}
	case *PredicateAccessPredicate:
		return &PredicateAccessPredicate{Loc: substPred(expr.Loc, b), Perm: Substitute(expr.Perm, b)}
	case *MagicWand:
		return &MagicWand{Left: Substitute(expr.Left, b), Right: Substitute(expr.Right, b)}
	case *CondExpr:
		return &CondExpr{
			Cond: Substitute(expr.Cond, b),
			Then: Substitute(expr.Then, b),
			Else: Substitute(expr.Else, b),
		}
	case *Implies:
		return &Implies{Left: Substitute(expr.Left, b), Right: Substitute(expr.Right, b)}
	case *BinaryExpr:
		return &BinaryExpr{Left: Substitute(expr.Left, b), Op: expr.Op, Right: Substitute(expr.Right, b), Type: expr.Type}
	case *UnaryExpr:
		return &UnaryExpr{Op: expr.Op, Operand: Substitute(expr.Operand, b), Type: expr.Type}
	case *FuncApp:
		return &FuncApp{Name: expr.Name, Args: substArgs(expr.Args, b), Type: expr.Type}
	case *DomainFuncApp:
		return &DomainFuncApp{Name: expr.Name, Args: substArgs(expr.Args, b), TypeVarMap: expr.TypeVarMap, Type: expr.Type}
	case *FractionalPerm:
		return &FractionalPerm{Num: Substitute(expr.Num, b), Den: Substitute(expr.Den, b)}
	default:
		// literals and permission constants have no variables
		return e
	}
}

func substField(f *FieldAccess, b Bindings) *FieldAccess {
	if f == nil {
		return nil
	}
	return &FieldAccess{Receiver: Substitute(f.Receiver, b), Field: f.Field, Type: f.Type}
}

func substPred(p *PredicateAccess, b Bindings) *PredicateAccess {
	if p == nil {
		return nil
	}
	return &PredicateAccess{Name: p.Name, Args: substArgs(p.Args, b)}
}

func substArgs(args []Expr, b Bindings) []Expr {
	if args == nil {
		return nil
	}
	out := make([]Expr, len(args))
	for i, a := range args {
		out[i] = Substitute(a, b)
	}
	return out
}
