package reward

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// pool is the process-wide worker pool singleton spec §9 calls for: an
// external collaborator with a fallible initialise_once(worker_count)
// operation. If initialisation is attempted twice, the second call is
// silently ignored — "the only effect is you don't get your requested
// thread count" (spec §9). Grounded on reward_evaluator.rs's
// evaluate_execution_batch, generalised from its "single-threaded for now"
// comment into the bounded-concurrency model spec §5 actually specifies,
// using golang.org/x/sync/errgroup the way the teacher's pack uses it for
// bounded fan-out.
type pool struct {
	size int
}

var (
	globalPool     *pool
	globalPoolOnce sync.Once
)

// InitialisePoolOnce configures the global worker pool's size the first
// time it's called. Subsequent calls are no-ops, per spec §9.
func InitialisePoolOnce(workerCount int) {
	globalPoolOnce.Do(func() {
		if workerCount <= 0 {
			workerCount = runtime.NumCPU()
		}
		globalPool = &pool{size: workerCount}
	})
}

func currentPool() *pool {
	InitialisePoolOnce(runtime.NumCPU())
	return globalPool
}

// runBounded runs fn(i) for i in [0, n) with at most the pool's configured
// concurrency, returning the first hard error encountered (if any). fn
// itself is responsible for collapsing per-item runtime hazards to a result
// value rather than an error — only programmer/config errors should reach
// this layer, per spec §7's propagation asymmetry.
func (p *pool) runBounded(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
