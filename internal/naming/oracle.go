package naming

import (
	"strconv"

	"github.com/lhaig/predterm/internal/ir"
)

// Oracle produces identifiers that are unique across a whole program, for
// new top-level declarations.
type Oracle interface {
	FreshIdentifier(hint string) string
}

// ProgramOracle is an Oracle seeded with every name a program declares.
type ProgramOracle struct {
	taken map[string]bool
}

// NewProgramOracle returns an oracle that never hands out a name already
// declared anywhere in prog.
func NewProgramOracle(prog *ir.Program) *ProgramOracle {
	o := &ProgramOracle{taken: make(map[string]bool)}
	for _, n := range Collect(prog) {
		o.taken[n] = true
	}
	return o
}

// FreshIdentifier returns hint if it is free, otherwise hint_0, hint_1, ...
func (o *ProgramOracle) FreshIdentifier(hint string) string {
	name := hint
	for i := 0; o.taken[name]; i++ {
		name = hint + "_" + strconv.Itoa(i)
	}
	o.taken[name] = true
	return name
}
