package loader

import (
	"gopkg.in/yaml.v3"

	"github.com/lhaig/predterm/internal/ir"
)

var stmtOperators = map[string]bool{
	"var": true, "assign": true, "unfold": true, "fold": true,
	"inhale": true, "exhale": true, "assert": true, "assume": true,
	"if": true, "while": true, "block": true,
}

// block decodes a list of statements into a scoped Seqn. A var statement
// adds its variable to the block's scoped declarations.
func (d *decoder) block(n *yaml.Node) (*ir.Seqn, error) {
	seqn := &ir.Seqn{Pos: d.pos(n)}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "expected a list of statements")
	}

	d.push()
	defer d.pop()

	for _, c := range n.Content {
		if err := d.stmt(c, seqn); err != nil {
			return nil, err
		}
	}
	return seqn, nil
}

// optionalBlock decodes a block that may be absent.
func (d *decoder) optionalBlock(n *yaml.Node) (*ir.Seqn, error) {
	if n == nil {
		return nil, nil
	}
	return d.block(n)
}

// stmt decodes one statement and appends it to into.
func (d *decoder) stmt(n *yaml.Node, into *ir.Seqn) error {
	if n.Kind != yaml.MappingNode {
		return d.errorf(n, "expected a statement")
	}
	op, attrs, err := d.mapping(n, stmtOperators, "statement")
	if err != nil {
		return err
	}
	arg := attrs[op]
	pos := d.pos(n)

	switch op {
	case "var":
		typeNode, ok := attrs["type"]
		if !ok {
			return d.errorf(n, "var %q needs a type", arg.Value)
		}
		decl := &ir.LocalVarDecl{Name: arg.Value, Type: ir.ResolveType(typeNode.Value)}
		d.declare(decl.Name, decl.Type)
		into.Scoped = append(into.Scoped, decl)
		if valueNode, ok := attrs["value"]; ok {
			value, err := d.expr(valueNode)
			if err != nil {
				return err
			}
			into.Stmts = append(into.Stmts, &ir.LocalVarAssign{Target: decl.Var(), Value: value, Pos: pos})
		}
		return nil

	case "assign":
		valueNode, ok := attrs["value"]
		if !ok {
			return d.errorf(n, "assign needs a value")
		}
		value, err := d.expr(valueNode)
		if err != nil {
			return err
		}
		target, err := d.expr(arg)
		if err != nil {
			return err
		}
		switch t := target.(type) {
		case *ir.LocalVar:
			into.Stmts = append(into.Stmts, &ir.LocalVarAssign{Target: t, Value: value, Pos: pos})
		case *ir.FieldAccess:
			into.Stmts = append(into.Stmts, &ir.FieldAssign{Target: t, Value: value, Pos: pos})
		default:
			return d.errorf(arg, "cannot assign to this expression")
		}
		return nil

	case "unfold", "fold":
		acc, err := d.predicateAccess(arg)
		if err != nil {
			return err
		}
		if op == "unfold" {
			into.Stmts = append(into.Stmts, &ir.Unfold{Acc: acc, Pos: pos})
		} else {
			into.Stmts = append(into.Stmts, &ir.Fold{Acc: acc, Pos: pos})
		}
		return nil

	case "inhale", "exhale", "assert", "assume":
		e, err := d.expr(arg)
		if err != nil {
			return err
		}
		var s ir.Stmt
		switch op {
		case "inhale":
			s = &ir.Inhale{Expr: e, Pos: pos}
		case "exhale":
			s = &ir.Exhale{Expr: e, Pos: pos}
		case "assert":
			s = &ir.Assert{Expr: e, Pos: pos}
		default:
			s = &ir.Assume{Expr: e, Pos: pos}
		}
		into.Stmts = append(into.Stmts, s)
		return nil

	case "if":
		c, err := d.expr(arg)
		if err != nil {
			return err
		}
		thenNode, ok := attrs["then"]
		if !ok {
			return d.errorf(n, "if needs a then block")
		}
		then, err := d.block(thenNode)
		if err != nil {
			return err
		}
		els, err := d.optionalBlock(attrs["else"])
		if err != nil {
			return err
		}
		into.Stmts = append(into.Stmts, &ir.If{Cond: c, Then: then, Else: els, Pos: pos})
		return nil

	case "while":
		c, err := d.expr(arg)
		if err != nil {
			return err
		}
		w := &ir.While{Cond: c, Pos: pos}
		if invNode, ok := attrs["invariants"]; ok {
			if w.Invariants, err = d.list(invNode); err != nil {
				return err
			}
		}
		bodyNode, ok := attrs["body"]
		if !ok {
			return d.errorf(n, "while needs a body")
		}
		if w.Body, err = d.block(bodyNode); err != nil {
			return err
		}
		into.Stmts = append(into.Stmts, w)
		return nil

	case "block":
		b, err := d.block(arg)
		if err != nil {
			return err
		}
		into.Stmts = append(into.Stmts, b)
		return nil
	}
	return d.errorf(n, "unsupported statement %q", op)
}

// predicateAccess decodes the operand of fold and unfold.
func (d *decoder) predicateAccess(n *yaml.Node) (*ir.PredicateAccessPredicate, error) {
	e, err := d.expr(n)
	if err != nil {
		return nil, err
	}
	acc, ok := e.(*ir.PredicateAccessPredicate)
	if !ok {
		return nil, d.errorf(n, "expected a predicate access")
	}
	return acc, nil
}
