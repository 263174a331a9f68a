// Package termination rewrites unfold statements so that every unfolding
// records which predicate instances it exposes. The recorded
// nestedPredicates facts are what a decreases check on recursive predicates
// consumes.
package termination

import (
	"go.uber.org/zap"

	"github.com/lhaig/predterm/internal/config"
	"github.com/lhaig/predterm/internal/diagnostic"
	"github.com/lhaig/predterm/internal/ir"
	"github.com/lhaig/predterm/internal/naming"
	"github.com/lhaig/predterm/internal/rewrite"
)

// Pass holds the state of one transformation run over one program. A Pass
// must not be shared between goroutines.
type Pass struct {
	prog   *ir.Program
	cfg    config.TerminationConfig
	logger *zap.Logger
	diag   *diagnostic.Diagnostics
	oracle naming.Oracle
	locals *naming.Allocator

	// instance functions by predicate name, and in synthesis order
	instances   map[string]*ir.Function
	synthesized []*ir.Function
}

// Option configures a Pass.
type Option func(*Pass)

// WithConfig sets the names of the background declarations.
func WithConfig(cfg config.TerminationConfig) Option {
	return func(p *Pass) { p.cfg = cfg }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pass) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDiagnostics makes the pass report into an externally owned sink.
func WithDiagnostics(d *diagnostic.Diagnostics) Option {
	return func(p *Pass) {
		if d != nil {
			p.diag = d
		}
	}
}

// WithOracle replaces the program-wide fresh-name oracle used for new
// function names.
func WithOracle(o naming.Oracle) Option {
	return func(p *Pass) {
		if o != nil {
			p.oracle = o
		}
	}
}

// NewPass prepares a transformation run over prog.
func NewPass(prog *ir.Program, opts ...Option) *Pass {
	p := &Pass{
		prog:      prog,
		cfg:       config.Default().Termination,
		logger:    zap.NewNop(),
		diag:      diagnostic.New(),
		instances: make(map[string]*ir.Function),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.oracle == nil {
		p.oracle = naming.NewProgramOracle(prog)
	}
	p.locals = naming.NewAllocator(naming.Collect(prog)...)
	return p
}

// Diagnostics returns the sink the pass reports into.
func (p *Pass) Diagnostics() *diagnostic.Diagnostics {
	return p.diag
}

// Synthesized returns the instance functions created so far, in creation
// order.
func (p *Pass) Synthesized() []*ir.Function {
	return append([]*ir.Function(nil), p.synthesized...)
}

// Run rewrites every unfold statement of the program and returns the
// transformed program, which also declares the synthesized instance
// functions. The input program is not modified. An *InvariantError is
// returned when the program breaks an assumption of the pass.
func (p *Pass) Run() (out *ir.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			p.logger.Error("transformation aborted", zap.Error(ie))
			out, err = nil, ie
		}
	}()

	out = rewrite.Program(p.prog, p.rewriteStmt)
	out.Functions = append(out.Functions, p.synthesized...)

	p.logger.Debug("transformation finished",
		zap.Int("instance_functions", len(p.synthesized)),
		zap.Int("diagnostics", p.diag.Count()),
	)
	return out, nil
}

func (p *Pass) rewriteStmt(s ir.Stmt) ir.Stmt {
	if u, ok := s.(*ir.Unfold); ok {
		return p.RewriteUnfold(u)
	}
	return s
}

// Result is the outcome of Transform.
type Result struct {
	Program     *ir.Program
	Diagnostics *diagnostic.Diagnostics
	Synthesized []*ir.Function
}

// Transform runs a fresh Pass over prog.
func Transform(prog *ir.Program, opts ...Option) (*Result, error) {
	p := NewPass(prog, opts...)
	out, err := p.Run()
	if err != nil {
		return nil, err
	}
	return &Result{
		Program:     out,
		Diagnostics: p.diag,
		Synthesized: p.Synthesized(),
	}, nil
}
