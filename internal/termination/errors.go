package termination

import (
	"fmt"

	"github.com/lhaig/predterm/internal/ir"
)

// InvariantKind names an upstream well-formedness guarantee that was broken.
type InvariantKind string

const (
	MagicWandInBody  InvariantKind = "magic wand in predicate body"
	UnknownPredicate InvariantKind = "unknown predicate"
)

// InvariantError reports input the pass cannot legally encounter. It is
// fatal: the pass stops and returns no program.
type InvariantError struct {
	Kind   InvariantKind
	Pos    ir.Position
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation at %s: %s: %s", e.Pos, e.Kind, e.Detail)
}

// violate aborts the current pass. Run recovers the panic into an error.
func violate(kind InvariantKind, pos ir.Position, format string, args ...interface{}) {
	panic(&InvariantError{Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...)})
}
