package stanargs

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/statforge/gostan/pkg/errors"
)

// Composer is any method-specific argument container that can serialize
// itself behind a run-configuration prefix.
type Composer interface {
	Method() Method
	Compose(rs RunConfiguration, idx int) []string
}

// ComposeAll builds the argument vectors for runs 0..n-1. Composition is a
// pure read of frozen state, so the per-index work runs on a goroutine pool
// without coordination beyond slot ownership.
func ComposeAll(ctx context.Context, c Composer, rs RunConfiguration, n int) ([][]string, error) {
	if err := errors.CheckContext(ctx, "compose commands"); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "run count must not be negative"),
			errors.Fields{"runs": n},
		)
	}

	out := make([][]string, n)
	p := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i := range out {
		i := i
		p.Go(func() {
			out[i] = c.Compose(rs, i)
		})
	}
	p.Wait()

	return out, nil
}
