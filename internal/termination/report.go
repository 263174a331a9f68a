package termination

import (
	"go.uber.org/zap"

	"github.com/lhaig/predterm/internal/diagnostic"
	"github.com/lhaig/predterm/internal/ir"
)

type missingKind int

const (
	missingNestedFunction missingKind = iota
	missingInstanceDomain
)

func (p *Pass) missingMessage(kind missingKind) string {
	switch kind {
	case missingNestedFunction:
		return p.cfg.NestedFunction + " function is needed but not declared."
	default:
		return p.cfg.InstanceDomain + " domain is needed but not declared."
	}
}

// report records a missing background declaration. It never fails; the
// pass carries on with the next statement.
func (p *Pass) report(kind missingKind, pos ir.Position) {
	msg := p.missingMessage(kind)
	p.diag.Errorf(diagnostic.Consistency, pos, "%s", msg)
	p.logger.Warn("consistency error", zap.String("message", msg), zap.Stringer("pos", pos))
}
