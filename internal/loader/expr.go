package loader

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lhaig/predterm/internal/ir"
)

var binaryOps = map[string]ir.BinaryOp{
	"and": ir.OpAnd,
	"or":  ir.OpOr,
	"eq":  ir.OpEq,
	"ne":  ir.OpNe,
	"lt":  ir.OpLt,
	"le":  ir.OpLe,
	"gt":  ir.OpGt,
	"ge":  ir.OpGe,
	"add": ir.OpAdd,
	"sub": ir.OpSub,
	"mul": ir.OpMul,
	"div": ir.OpDiv,
	"mod": ir.OpMod,
}

// exprOperators lists every key that selects an expression form. All other
// keys of an expression mapping are attributes of the form (perm, of, then,
// else, args).
var exprOperators = map[string]bool{
	"acc": true, "pred": true, "field": true, "cond": true, "call": true,
	"wand": true, "frac": true, "implies": true, "not": true, "neg": true,
}

func init() {
	for op := range binaryOps {
		exprOperators[op] = true
	}
}

// mapping splits a mapping node into its operator key and its attributes.
func (d *decoder) mapping(n *yaml.Node, operators map[string]bool, what string) (string, map[string]*yaml.Node, error) {
	attrs := make(map[string]*yaml.Node, len(n.Content)/2)
	op := ""
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		attrs[key] = n.Content[i+1]
		if operators[key] {
			if op != "" {
				return "", nil, d.errorf(n.Content[i], "%s has both %q and %q", what, op, key)
			}
			op = key
		}
	}
	if op == "" {
		return "", nil, d.errorf(n, "unknown %s", what)
	}
	return op, attrs, nil
}

func (d *decoder) exprs(nodes []yaml.Node) ([]ir.Expr, error) {
	var out []ir.Expr
	for i := range nodes {
		e, err := d.expr(&nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *decoder) list(n *yaml.Node) ([]ir.Expr, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "expected a list of expressions")
	}
	out := make([]ir.Expr, 0, len(n.Content))
	for _, c := range n.Content {
		e, err := d.expr(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// expr decodes one expression node.
func (d *decoder) expr(n *yaml.Node) (ir.Expr, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalar(n)
	case yaml.MappingNode:
	default:
		return nil, d.errorf(n, "expected an expression")
	}

	op, attrs, err := d.mapping(n, exprOperators, "expression")
	if err != nil {
		return nil, err
	}
	arg := attrs[op]

	if bop, ok := binaryOps[op]; ok {
		return d.binary(arg, bop)
	}

	switch op {
	case "acc":
		return d.access(arg, attrs["perm"])

	case "pred":
		return d.access(n, nil)

	case "field":
		return d.fieldAccess(n, attrs)

	case "implies":
		left, right, err := d.pair(arg)
		if err != nil {
			return nil, err
		}
		return &ir.Implies{Left: left, Right: right}, nil

	case "wand":
		left, right, err := d.pair(arg)
		if err != nil {
			return nil, err
		}
		return &ir.MagicWand{Left: left, Right: right}, nil

	case "frac":
		num, den, err := d.pair(arg)
		if err != nil {
			return nil, err
		}
		return &ir.FractionalPerm{Num: num, Den: den}, nil

	case "not":
		operand, err := d.expr(arg)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: ir.OpNot, Operand: operand, Type: ir.TypeBool}, nil

	case "neg":
		operand, err := d.expr(arg)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: ir.OpNeg, Operand: operand, Type: operand.ExprType()}, nil

	case "cond":
		return d.cond(n, attrs)

	case "call":
		return d.call(arg, attrs["args"])
	}
	return nil, d.errorf(n, "unsupported expression %q", op)
}

func (d *decoder) scalar(n *yaml.Node) (ir.Expr, error) {
	switch n.Tag {
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, d.errorf(n, "invalid integer %q", n.Value)
		}
		return &ir.IntLit{Value: v}, nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, d.errorf(n, "invalid boolean %q", n.Value)
		}
		return &ir.BoolLit{Value: v}, nil
	case "!!null":
		return &ir.NullLit{}, nil
	}

	switch n.Value {
	case "write":
		return &ir.FullPerm{}, nil
	case "none":
		return &ir.NoPerm{}, nil
	case "wildcard":
		return &ir.WildcardPerm{}, nil
	}
	t, ok := d.lookup(n.Value)
	if !ok {
		return nil, d.errorf(n, "undeclared variable %q", n.Value)
	}
	return &ir.LocalVar{Name: n.Value, Type: t}, nil
}

// binary decodes and/or (two or more operands, folded to the left) and the
// other binary operators (exactly two operands).
func (d *decoder) binary(n *yaml.Node, op ir.BinaryOp) (ir.Expr, error) {
	operands, err := d.list(n)
	if err != nil {
		return nil, err
	}
	variadic := op == ir.OpAnd || op == ir.OpOr
	if len(operands) < 2 || (!variadic && len(operands) != 2) {
		return nil, d.errorf(n, "%s expects two operands, got %d", op, len(operands))
	}

	result := operands[0]
	for _, right := range operands[1:] {
		t := ir.TypeBool
		if !op.IsBoolean() {
			t = result.ExprType()
		}
		result = &ir.BinaryExpr{Left: result, Op: op, Right: right, Type: t}
	}
	return result, nil
}

func (d *decoder) pair(n *yaml.Node) (ir.Expr, ir.Expr, error) {
	operands, err := d.list(n)
	if err != nil {
		return nil, nil, err
	}
	if len(operands) != 2 {
		return nil, nil, d.errorf(n, "expected two operands, got %d", len(operands))
	}
	return operands[0], operands[1], nil
}

// access decodes the location of an acc(...) and its optional permission,
// which defaults to write.
func (d *decoder) access(loc, permNode *yaml.Node) (ir.Expr, error) {
	var perm ir.Expr = &ir.FullPerm{}
	if permNode != nil {
		p, err := d.expr(permNode)
		if err != nil {
			return nil, err
		}
		perm = p
	}

	if loc.Kind != yaml.MappingNode {
		return nil, d.errorf(loc, "acc expects a field or predicate location")
	}
	op, attrs, err := d.mapping(loc, map[string]bool{"field": true, "pred": true}, "location")
	if err != nil {
		return nil, err
	}

	if op == "field" {
		fa, err := d.fieldAccess(loc, attrs)
		if err != nil {
			return nil, err
		}
		return &ir.FieldAccessPredicate{Loc: fa, Perm: perm}, nil
	}

	name := attrs["pred"].Value
	var args []ir.Expr
	if argsNode, ok := attrs["args"]; ok {
		if args, err = d.list(argsNode); err != nil {
			return nil, err
		}
	}
	return &ir.PredicateAccessPredicate{
		Loc:  &ir.PredicateAccess{Name: name, Args: args},
		Perm: perm,
	}, nil
}

func (d *decoder) fieldAccess(n *yaml.Node, attrs map[string]*yaml.Node) (*ir.FieldAccess, error) {
	name := attrs["field"].Value
	field := d.prog.FindField(name)
	if field == nil {
		return nil, d.errorf(attrs["field"], "undeclared field %q", name)
	}
	of, ok := attrs["of"]
	if !ok {
		return nil, d.errorf(n, "field %q needs a receiver (of)", name)
	}
	recv, err := d.expr(of)
	if err != nil {
		return nil, err
	}
	return &ir.FieldAccess{Receiver: recv, Field: name, Type: field.Type}, nil
}

func (d *decoder) cond(n *yaml.Node, attrs map[string]*yaml.Node) (ir.Expr, error) {
	thenNode, okThen := attrs["then"]
	elseNode, okElse := attrs["else"]
	if !okThen || !okElse {
		return nil, d.errorf(n, "cond needs both then and else")
	}
	c, err := d.expr(attrs["cond"])
	if err != nil {
		return nil, err
	}
	then, err := d.expr(thenNode)
	if err != nil {
		return nil, err
	}
	els, err := d.expr(elseNode)
	if err != nil {
		return nil, err
	}
	return &ir.CondExpr{Cond: c, Then: then, Else: els}, nil
}

// call decodes an application of a program function or a domain function.
func (d *decoder) call(nameNode, argsNode *yaml.Node) (ir.Expr, error) {
	var args []ir.Expr
	if argsNode != nil {
		var err error
		if args, err = d.list(argsNode); err != nil {
			return nil, err
		}
	}

	name := nameNode.Value
	if fn := d.prog.FindFunction(name); fn != nil {
		return &ir.FuncApp{Name: name, Args: args, Type: fn.Result}, nil
	}
	if fn, _ := d.prog.FindDomainFunction(name); fn != nil {
		return &ir.DomainFuncApp{Name: name, Args: args, Type: fn.Result}, nil
	}
	return nil, d.errorf(nameNode, "undeclared function %q", name)
}
