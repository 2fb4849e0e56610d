package partition

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// cancelCheckInterval is how many states are visited between context checks.
const cancelCheckInterval = 1 << 10

// Solver runs exhaustive partition searches. A Solver is safe for concurrent
// use.
type Solver struct {
	cfg    Config
	logger *slog.Logger
	cache  Cache // nil: a fresh cache per call
}

// NewSolver validates cfg and applies opts.
func NewSolver(cfg Config, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Solve partitions items into groupCount groups with DefaultConfig.
func Solve(ctx context.Context, items []Item, groupCount int) (Result, error) {
	s, err := NewSolver(DefaultConfig())
	if err != nil {
		return Result{}, err
	}
	return s.Solve(ctx, items, groupCount)
}

// Solve returns the partition of items into groupCount groups with the
// smallest difference between the largest and smallest group total. Every
// item ends up in exactly one group. Ties are broken by Compare.
//
// A groupCount below one yields ErrInvalidConfiguration. Empty items yield
// groupCount empty groups and a difference of zero.
func (s *Solver) Solve(ctx context.Context, items []Item, groupCount int) (Result, error) {
	r, _, err := s.Run(ctx, items, groupCount)
	return r, err
}

// Run is Solve, also reporting search statistics. Stats are returned even
// when the search is aborted.
func (s *Solver) Run(ctx context.Context, items []Item, groupCount int) (Result, Stats, error) {
	start := time.Now()
	if groupCount < 1 {
		return Result{}, Stats{}, fmt.Errorf("%w: group count must be at least 1 (got %d)",
			ErrInvalidConfiguration, groupCount)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, Stats{}, err
	}

	cache := s.cache
	if cache == nil {
		cache = s.cfg.newCache()
	}
	cnt := &counters{}
	table := newItemTable(items)

	s.logger.Debug("partition search started",
		"items", len(items), "groups", groupCount,
		"workers", s.cfg.Workers, "symmetry", s.cfg.Symmetry)

	var (
		res Result
		err error
	)
	if s.cfg.Workers > 1 && groupCount > 1 && len(items) > 0 {
		res, err = s.fanOut(ctx, table, groupCount, cache, cnt)
	} else {
		sr := &search{ctx: ctx, table: table, cache: cache, symmetric: s.cfg.Symmetry, cnt: cnt}
		res, err = sr.solve(0, NewPartition(groupCount))
	}

	stats := cnt.snapshot(time.Since(start))
	if err != nil {
		s.logger.Debug("partition search aborted", "error", err, "states", stats.States)
		return Result{}, stats, err
	}
	s.logger.Debug("partition search finished",
		"difference", res.Difference,
		"states", stats.States, "leaves", stats.Leaves,
		"cache_hits", stats.CacheHits, "cache_len", cache.Len(),
		"elapsed", stats.Elapsed)

	return Result{Difference: res.Difference, Partition: res.Partition.Clone()}, stats, nil
}

// ── Recursive search ────────────────────────────────────────────────

// search is one depth-first walk. Everything it points to except cnt and
// cache is read-only, so walks may run side by side.
type search struct {
	ctx       context.Context
	table     *itemTable
	cache     Cache
	symmetric bool
	cnt       *counters
}

// solve returns the best completion of p with items[depth:].
func (s *search) solve(depth int, p Partition) (Result, error) {
	if depth == len(s.table.items) {
		s.cnt.leaves.Add(1)
		return Result{Difference: p.Difference(), Partition: p}, nil
	}
	if s.cnt.states.Add(1)%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return Result{}, err
		}
	}

	key := s.table.key(depth, p, s.symmetric)
	if r, ok := s.cache.Load(key); ok {
		s.cnt.hits.Add(1)
		return key.restore(r), nil
	}

	it := s.table.items[depth]
	var best Result
	for i := range p {
		r, err := s.solve(depth+1, p.Assign(i, it))
		if err != nil {
			return Result{}, err
		}
		if i == 0 || Compare(r, best) < 0 {
			best = r
		}
	}

	s.cache.Store(key, key.canonical(best))
	s.cnt.stores.Add(1)
	return best, nil
}

// ── Parallel fan-out ────────────────────────────────────────────────

// fanOut places the first item in each group and searches the resulting
// branches on separate goroutines. The merge goes through Compare in branch
// order, so the outcome does not depend on which worker finishes first.
//
// Exact-keyed results are a pure function of the state, so all branches
// share one cache. Symmetric keys are not: a hit may hand back a tied
// partition computed along another path. Each branch then gets a private
// cache, and branches that are permutations of an earlier one reuse its
// result instead of being searched again.
func (s *Solver) fanOut(ctx context.Context, table *itemTable, k int, cache Cache, cnt *counters) (Result, error) {
	root := NewPartition(k)
	rootKey := table.key(0, root, s.cfg.Symmetry)
	if r, ok := cache.Load(rootKey); ok {
		cnt.hits.Add(1)
		return rootKey.restore(r), nil
	}
	cnt.states.Add(1)

	first := table.items[0]
	branches := make([]Partition, k)
	keys := make([]Key, k)
	source := make([]int, k) // branch whose search result serves branch i
	seen := make(map[string]int)
	var jobs []int
	for i := range branches {
		branches[i] = root.Assign(i, first)
		source[i] = i
		if s.cfg.Symmetry {
			keys[i] = table.key(1, branches[i], true)
			if j, ok := seen[keys[i].fp]; ok {
				source[i] = j
				continue
			}
			seen[keys[i].fp] = i
		}
		jobs = append(jobs, i)
	}

	numWorkers := min(s.cfg.Workers, len(jobs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type branchResult struct {
		idx int
		res Result
		err error
	}
	resultCh := make(chan branchResult, len(jobs))
	jobCh := make(chan int, len(jobs))
	for _, i := range jobs {
		jobCh <- i
	}
	close(jobCh)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobCh {
				bc := cache
				if s.cfg.Symmetry {
					bc = s.cfg.newCache()
				}
				sr := &search{ctx: ctx, table: table, cache: bc, symmetric: s.cfg.Symmetry, cnt: cnt}
				r, err := sr.solve(1, branches[i])
				resultCh <- branchResult{idx: i, res: r, err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Result, k)
	var firstErr error
	for br := range resultCh {
		if br.err != nil {
			if firstErr == nil {
				firstErr = br.err
				cancel()
			}
			continue
		}
		s.logger.Debug("partition branch finished", "branch", br.idx, "difference", br.res.Difference)
		results[br.idx] = br.res
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	var best Result
	for i := range branches {
		r := results[source[i]]
		if source[i] != i {
			r = keys[i].restore(keys[source[i]].canonical(r))
		}
		if i == 0 || Compare(r, best) < 0 {
			best = r
		}
	}

	cache.Store(rootKey, rootKey.canonical(best))
	cnt.stores.Add(1)
	return best, nil
}
