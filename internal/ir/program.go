package ir

// FindPredicate returns the predicate with the given name, or nil.
func (p *Program) FindPredicate(name string) *Predicate {
	for _, pred := range p.Predicates {
		if pred.Name == name {
			return pred
		}
	}
	return nil
}

// FindDomain returns the domain with the given name, or nil.
func (p *Program) FindDomain(name string) *Domain {
	for _, d := range p.Domains {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// FindDomainFunction searches every domain for a function with the given
// name. It returns the function and its owning domain, or nil, nil.
func (p *Program) FindDomainFunction(name string) (*DomainFunc, *Domain) {
	for _, d := range p.Domains {
		for _, fn := range d.Functions {
			if fn.Name == name {
				return fn, d
			}
		}
	}
	return nil, nil
}

// FindFunction returns the program function with the given name, or nil.
func (p *Program) FindFunction(name string) *Function {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// FindMethod returns the method with the given name, or nil.
func (p *Program) FindMethod(name string) *Method {
	for _, m := range p.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FindField returns the field with the given name, or nil.
func (p *Program) FindField(name string) *Field {
	for _, f := range p.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Formals returns the variable references of a declaration list, in order.
func Formals(decls []*LocalVarDecl) []Expr {
	vars := make([]Expr, len(decls))
	for i, d := range decls {
		vars[i] = d.Var()
	}
	return vars
}
