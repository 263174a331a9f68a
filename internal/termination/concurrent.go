package termination

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lhaig/predterm/internal/diagnostic"
	"github.com/lhaig/predterm/internal/ir"
)

// TransformAll transforms several programs concurrently. Each program gets
// its own Pass with its own cache, name set and diagnostic sink, whatever
// the options say; results are returned in input order. The first error
// cancels programs that have not started yet.
func TransformAll(ctx context.Context, progs []*ir.Program, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(progs))
	passOpts := append(append([]Option(nil), opts...), isolated())
	g, ctx := errgroup.WithContext(ctx)

	for i, prog := range progs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Transform(prog, passOpts...)
			if err != nil {
				return fmt.Errorf("program %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// isolated drops any sink or oracle shared through options.
func isolated() Option {
	return func(p *Pass) {
		p.diag = diagnostic.New()
		p.oracle = nil
	}
}
