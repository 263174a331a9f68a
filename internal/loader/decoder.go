package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lhaig/predterm/internal/ir"
)

// decoder turns document nodes into IR, resolving variable and field types
// against the declarations seen so far.
type decoder struct {
	file   string
	prog   *ir.Program
	scopes []map[string]*ir.Type
}

func newDecoder(file string) *decoder {
	return &decoder{file: file, prog: &ir.Program{}}
}

func (d *decoder) pos(n *yaml.Node) ir.Position {
	return ir.Position{File: d.file, Line: n.Line, Column: n.Column}
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &Error{Pos: d.pos(n), Msg: fmt.Sprintf(format, args...)}
}

// --- scopes ---

func (d *decoder) push(decls ...[]*ir.LocalVarDecl) {
	scope := make(map[string]*ir.Type)
	for _, ds := range decls {
		for _, decl := range ds {
			scope[decl.Name] = decl.Type
		}
	}
	d.scopes = append(d.scopes, scope)
}

func (d *decoder) pop() {
	d.scopes = d.scopes[:len(d.scopes)-1]
}

func (d *decoder) declare(name string, t *ir.Type) {
	d.scopes[len(d.scopes)-1][name] = t
}

func (d *decoder) lookup(name string) (*ir.Type, bool) {
	for i := len(d.scopes) - 1; i >= 0; i-- {
		if t, ok := d.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// --- declarations ---

// program decodes signatures first and bodies second, so bodies may refer
// to declarations that appear later in the document.
func (d *decoder) program(doc *document) (*ir.Program, error) {
	for _, dd := range doc.Domains {
		dom := &ir.Domain{Name: dd.Name, TypeVars: dd.TypeParams, Pos: dd.loc.at(d.file)}
		for _, fd := range dd.Functions {
			dom.Functions = append(dom.Functions, &ir.DomainFunc{
				Name:    fd.Name,
				Formals: params(fd.Params),
				Result:  resultType(fd.Result),
				Domain:  dd.Name,
				Pos:     fd.loc.at(d.file),
			})
		}
		d.prog.Domains = append(d.prog.Domains, dom)
	}
	for _, fd := range doc.Fields {
		d.prog.Fields = append(d.prog.Fields, &ir.Field{
			Name: fd.Name,
			Type: ir.ResolveType(fd.Type),
			Pos:  fd.loc.at(d.file),
		})
	}
	for _, fd := range doc.Functions {
		d.prog.Functions = append(d.prog.Functions, &ir.Function{
			Name:    fd.Name,
			Formals: params(fd.Params),
			Result:  resultType(fd.Result),
			Pos:     fd.loc.at(d.file),
		})
	}
	for _, pd := range doc.Predicates {
		d.prog.Predicates = append(d.prog.Predicates, &ir.Predicate{
			Name:    pd.Name,
			Formals: params(pd.Params),
			Pos:     pd.loc.at(d.file),
		})
	}
	for _, md := range doc.Methods {
		d.prog.Methods = append(d.prog.Methods, &ir.Method{
			Name:    md.Name,
			Formals: params(md.Params),
			Returns: params(md.Returns),
			Pos:     md.loc.at(d.file),
		})
	}

	for i := range doc.Functions {
		if err := d.functionBody(d.prog.Functions[i], &doc.Functions[i]); err != nil {
			return nil, err
		}
	}
	for i := range doc.Predicates {
		if err := d.predicateBody(d.prog.Predicates[i], &doc.Predicates[i]); err != nil {
			return nil, err
		}
	}
	for i := range doc.Methods {
		if err := d.methodBody(d.prog.Methods[i], &doc.Methods[i]); err != nil {
			return nil, err
		}
	}
	return d.prog, nil
}

func (d *decoder) functionBody(fn *ir.Function, fd *functionDoc) error {
	d.push(fn.Formals)
	defer d.pop()

	var err error
	if fn.Pres, err = d.exprs(fd.Requires); err != nil {
		return err
	}
	d.declare("result", fn.Result)
	if fn.Posts, err = d.exprs(fd.Ensures); err != nil {
		return err
	}
	if present(&fd.Body) {
		if fn.Body, err = d.expr(&fd.Body); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) predicateBody(pred *ir.Predicate, pd *predicateDoc) error {
	if !present(&pd.Body) {
		return nil
	}
	d.push(pred.Formals)
	defer d.pop()

	body, err := d.expr(&pd.Body)
	if err != nil {
		return err
	}
	pred.Body = body
	return nil
}

func (d *decoder) methodBody(m *ir.Method, md *methodDoc) error {
	d.push(m.Formals, m.Returns)
	defer d.pop()

	var err error
	if m.Pres, err = d.exprs(md.Requires); err != nil {
		return err
	}
	if m.Posts, err = d.exprs(md.Ensures); err != nil {
		return err
	}
	if present(&md.Body) {
		if m.Body, err = d.block(&md.Body); err != nil {
			return err
		}
	}
	return nil
}

func params(ps []paramDoc) []*ir.LocalVarDecl {
	decls := make([]*ir.LocalVarDecl, len(ps))
	for i, p := range ps {
		decls[i] = &ir.LocalVarDecl{Name: p.Name, Type: ir.ResolveType(p.Type)}
	}
	return decls
}

func resultType(name string) *ir.Type {
	if name == "" {
		return ir.TypeBool
	}
	return ir.ResolveType(name)
}
