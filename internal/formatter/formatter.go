package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lhaig/predterm/internal/ir"
)

// Format takes an IR Program and returns it as readable Viper-like source.
func Format(prog *ir.Program) string {
	f := &formatter{}
	f.formatProgram(prog)
	return f.sb.String()
}

// Stmt formats a single statement at indentation level zero.
func Stmt(s ir.Stmt) string {
	f := &formatter{}
	f.formatStmt(s)
	return f.sb.String()
}

// Expr formats an expression on one line.
func Expr(e ir.Expr) string {
	return expr(e)
}

// Exprs formats an argument list without the surrounding parentheses.
func Exprs(es []ir.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = expr(e)
	}
	return strings.Join(parts, ", ")
}

type formatter struct {
	sb     strings.Builder
	indent int
}

// --- helpers ---

func (f *formatter) emitLine(s string) {
	if s == "" {
		f.sb.WriteString("\n")
	} else {
		f.sb.WriteString(f.indentStr())
		f.sb.WriteString(s)
		f.sb.WriteString("\n")
	}
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.emitLine(fmt.Sprintf(format, args...))
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

func (f *formatter) blankLine() {
	f.sb.WriteString("\n")
}

// --- program-level ---

func (f *formatter) formatProgram(prog *ir.Program) {
	first := true
	sep := func() {
		if !first {
			f.blankLine()
		}
		first = false
	}

	// Emit declarations in canonical order: domains, fields, functions,
	// predicates, methods
	for _, d := range prog.Domains {
		sep()
		f.formatDomain(d)
	}
	if len(prog.Fields) > 0 {
		sep()
		for _, fld := range prog.Fields {
			f.emitLinef("field %s: %s", fld.Name, fld.Type)
		}
	}
	for _, fn := range prog.Functions {
		sep()
		f.formatFunction(fn)
	}
	for _, p := range prog.Predicates {
		sep()
		f.formatPredicate(p)
	}
	for _, m := range prog.Methods {
		sep()
		f.formatMethod(m)
	}
}

func (f *formatter) formatDomain(d *ir.Domain) {
	name := d.Name
	if len(d.TypeVars) > 0 {
		name += "[" + strings.Join(d.TypeVars, ", ") + "]"
	}
	if len(d.Functions) == 0 {
		f.emitLinef("domain %s {}", name)
		return
	}
	f.emitLinef("domain %s {", name)
	f.incIndent()
	for _, fn := range d.Functions {
		f.emitLinef("function %s(%s): %s", fn.Name, decls(fn.Formals), fn.Result)
	}
	f.decIndent()
	f.emitLine("}")
}

func (f *formatter) formatFunction(fn *ir.Function) {
	f.emitLinef("function %s(%s): %s", fn.Name, decls(fn.Formals), fn.Result)
	f.formatSpecs(fn.Pres, fn.Posts)
	if fn.Body != nil {
		f.emitLine("{")
		f.incIndent()
		f.emitLine(expr(fn.Body))
		f.decIndent()
		f.emitLine("}")
	}
}

func (f *formatter) formatPredicate(p *ir.Predicate) {
	if p.Body == nil {
		f.emitLinef("predicate %s(%s)", p.Name, decls(p.Formals))
		return
	}
	f.emitLinef("predicate %s(%s) {", p.Name, decls(p.Formals))
	f.incIndent()
	f.emitLine(expr(p.Body))
	f.decIndent()
	f.emitLine("}")
}

func (f *formatter) formatMethod(m *ir.Method) {
	header := fmt.Sprintf("method %s(%s)", m.Name, decls(m.Formals))
	if len(m.Returns) > 0 {
		header += fmt.Sprintf(" returns (%s)", decls(m.Returns))
	}
	f.emitLine(header)
	f.formatSpecs(m.Pres, m.Posts)
	if m.Body != nil {
		f.formatBlock(m.Body)
	}
}

func (f *formatter) formatSpecs(pres, posts []ir.Expr) {
	f.incIndent()
	for _, pre := range pres {
		f.emitLinef("requires %s", expr(pre))
	}
	for _, post := range posts {
		f.emitLinef("ensures %s", expr(post))
	}
	f.decIndent()
}

// --- statements ---

// formatBlock writes "{", the block contents and "}" on their own lines.
func (f *formatter) formatBlock(s *ir.Seqn) {
	f.emitLine("{")
	f.incIndent()
	f.formatSeqnBody(s)
	f.decIndent()
	f.emitLine("}")
}

func (f *formatter) formatSeqnBody(s *ir.Seqn) {
	for _, d := range s.Scoped {
		f.emitLinef("var %s: %s", d.Name, d.Type)
	}
	for _, child := range s.Stmts {
		f.formatStmt(child)
	}
}

func (f *formatter) formatStmt(s ir.Stmt) {
	switch stmt := s.(type) {
	case *ir.Seqn:
		f.formatBlock(stmt)
	case *ir.LocalVarAssign:
		f.emitLinef("%s := %s", stmt.Target.Name, expr(stmt.Value))
	case *ir.FieldAssign:
		f.emitLinef("%s := %s", expr(stmt.Target), expr(stmt.Value))
	case *ir.Unfold:
		f.emitLinef("unfold %s", expr(stmt.Acc))
	case *ir.Fold:
		f.emitLinef("fold %s", expr(stmt.Acc))
	case *ir.Inhale:
		f.emitLinef("inhale %s", expr(stmt.Expr))
	case *ir.Exhale:
		f.emitLinef("exhale %s", expr(stmt.Expr))
	case *ir.Assert:
		f.emitLinef("assert %s", expr(stmt.Expr))
	case *ir.Assume:
		f.emitLinef("assume %s", expr(stmt.Expr))
	case *ir.If:
		f.emitLinef("if (%s) {", expr(stmt.Cond))
		f.incIndent()
		if stmt.Then != nil {
			f.formatSeqnBody(stmt.Then)
		}
		f.decIndent()
		if stmt.Else != nil && (len(stmt.Else.Stmts) > 0 || len(stmt.Else.Scoped) > 0) {
			f.emitLine("} else {")
			f.incIndent()
			f.formatSeqnBody(stmt.Else)
			f.decIndent()
		}
		f.emitLine("}")
	case *ir.While:
		f.emitLinef("while (%s)", expr(stmt.Cond))
		f.incIndent()
		for _, inv := range stmt.Invariants {
			f.emitLinef("invariant %s", expr(inv))
		}
		f.decIndent()
		if stmt.Body != nil {
			f.formatBlock(stmt.Body)
		} else {
			f.emitLine("{}")
		}
	default:
		f.emitLinef("// unknown statement %T", s)
	}
}

// --- expressions ---

func expr(e ir.Expr) string {
	switch x := e.(type) {
	case nil:
		return "<nil>"
	case *ir.IntLit:
		return strconv.FormatInt(x.Value, 10)
	case *ir.BoolLit:
		return strconv.FormatBool(x.Value)
	case *ir.NullLit:
		return "null"
	case *ir.LocalVar:
		return x.Name
	case *ir.FieldAccess:
		return operand(x.Receiver) + "." + x.Field
	case *ir.PredicateAccess:
		return x.Name + "(" + Exprs(x.Args) + ")"
	case *ir.FieldAccessPredicate:
		return "acc(" + expr(x.Loc) + ", " + expr(x.Perm) + ")"
	case *ir.PredicateAccessPredicate:
		return "acc(" + expr(x.Loc) + ", " + expr(x.Perm) + ")"
	case *ir.MagicWand:
		return operand(x.Left) + " --* " + operand(x.Right)
	case *ir.CondExpr:
		return operand(x.Cond) + " ? " + operand(x.Then) + " : " + operand(x.Else)
	case *ir.Implies:
		return operand(x.Left) + " ==> " + operand(x.Right)
	case *ir.BinaryExpr:
		return operand(x.Left) + " " + x.Op.String() + " " + operand(x.Right)
	case *ir.UnaryExpr:
		return x.Op.String() + operand(x.Operand)
	case *ir.FuncApp:
		return x.Name + "(" + Exprs(x.Args) + ")"
	case *ir.DomainFuncApp:
		return x.Name + "(" + Exprs(x.Args) + ")"
	case *ir.FullPerm:
		return "write"
	case *ir.NoPerm:
		return "none"
	case *ir.WildcardPerm:
		return "wildcard"
	case *ir.FractionalPerm:
		return operand(x.Num) + "/" + operand(x.Den)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

// operand formats a sub-expression, parenthesising compound forms.
func operand(e ir.Expr) string {
	switch e.(type) {
	case *ir.BinaryExpr, *ir.Implies, *ir.CondExpr, *ir.MagicWand, *ir.FractionalPerm:
		return "(" + expr(e) + ")"
	default:
		return expr(e)
	}
}

func decls(ds []*ir.LocalVarDecl) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.Name + ": " + d.Type.String()
	}
	return strings.Join(parts, ", ")
}
