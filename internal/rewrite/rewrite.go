// Package rewrite drives bottom-up statement rewrites over method bodies.
package rewrite

import "github.com/lhaig/predterm/internal/ir"

// Func maps one statement to its replacement. Returning the argument leaves
// the statement unchanged.
type Func func(ir.Stmt) ir.Stmt

// Program returns a copy of prog in which every method body has been
// rewritten with fn. Declarations other than methods are shared with prog;
// method bodies are rebuilt, so prog itself is left untouched.
func Program(prog *ir.Program, fn Func) *ir.Program {
	out := &ir.Program{
		Domains:    prog.Domains,
		Fields:     prog.Fields,
		Functions:  append([]*ir.Function(nil), prog.Functions...),
		Predicates: prog.Predicates,
	}
	for _, m := range prog.Methods {
		out.Methods = append(out.Methods, Method(m, fn))
	}
	return out
}

// Method returns a copy of m with its body rewritten.
func Method(m *ir.Method, fn Func) *ir.Method {
	copied := *m
	if m.Body != nil {
		copied.Body = asSeqn(Stmt(m.Body, fn), m.Body.Pos)
	}
	return &copied
}

// Stmt rewrites s bottom-up: the children of a compound statement are
// rewritten before fn is applied to the rebuilt parent. The statement fn
// returns is not traversed again.
func Stmt(s ir.Stmt, fn Func) ir.Stmt {
	switch stmt := s.(type) {
	case *ir.Seqn:
		return fn(seqn(stmt, fn))
	case *ir.If:
		rebuilt := &ir.If{Cond: stmt.Cond, Pos: stmt.Pos}
		if stmt.Then != nil {
			rebuilt.Then = seqn(stmt.Then, fn)
		}
		if stmt.Else != nil {
			rebuilt.Else = seqn(stmt.Else, fn)
		}
		return fn(rebuilt)
	case *ir.While:
		rebuilt := &ir.While{Cond: stmt.Cond, Invariants: stmt.Invariants, Pos: stmt.Pos}
		if stmt.Body != nil {
			rebuilt.Body = seqn(stmt.Body, fn)
		}
		return fn(rebuilt)
	default:
		return fn(s)
	}
}

// seqn rebuilds a block with rewritten children. Nested blocks are passed
// through fn like any other statement.
func seqn(s *ir.Seqn, fn Func) *ir.Seqn {
	rebuilt := &ir.Seqn{Scoped: s.Scoped, Pos: s.Pos}
	for _, child := range s.Stmts {
		rebuilt.Stmts = append(rebuilt.Stmts, Stmt(child, fn))
	}
	return rebuilt
}

func asSeqn(s ir.Stmt, pos ir.Position) *ir.Seqn {
	if block, ok := s.(*ir.Seqn); ok {
		return block
	}
	return &ir.Seqn{Stmts: []ir.Stmt{s}, Pos: pos}
}
