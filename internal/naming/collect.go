package naming

import (
	"sort"

	"github.com/lhaig/predterm/internal/ir"
)

// Collect returns every identifier declared in prog: top-level declarations,
// domain functions, fields, formals, returns, and scoped or assigned locals.
// The result is sorted and free of duplicates.
func Collect(prog *ir.Program) []string {
	set := make(map[string]bool)
	add := func(names ...string) {
		for _, n := range names {
			if n != "" {
				set[n] = true
			}
		}
	}
	decls := func(ds []*ir.LocalVarDecl) {
		for _, d := range ds {
			add(d.Name)
		}
	}

	for _, d := range prog.Domains {
		add(d.Name)
		add(d.TypeVars...)
		for _, fn := range d.Functions {
			add(fn.Name)
			decls(fn.Formals)
		}
	}
	for _, f := range prog.Fields {
		add(f.Name)
	}
	for _, fn := range prog.Functions {
		add(fn.Name)
		decls(fn.Formals)
	}
	for _, p := range prog.Predicates {
		add(p.Name)
		decls(p.Formals)
	}
	for _, m := range prog.Methods {
		add(m.Name)
		decls(m.Formals)
		decls(m.Returns)
		if m.Body != nil {
			collectStmt(m.Body, add)
		}
	}

	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectStmt(s ir.Stmt, add func(...string)) {
	switch stmt := s.(type) {
	case *ir.Seqn:
		for _, d := range stmt.Scoped {
			add(d.Name)
		}
		for _, child := range stmt.Stmts {
			collectStmt(child, add)
		}
	case *ir.LocalVarAssign:
		if stmt.Target != nil {
			add(stmt.Target.Name)
		}
	case *ir.If:
		if stmt.Then != nil {
			collectStmt(stmt.Then, add)
		}
		if stmt.Else != nil {
			collectStmt(stmt.Else, add)
		}
	case *ir.While:
		if stmt.Body != nil {
			collectStmt(stmt.Body, add)
		}
	}
}
