package partition

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Config tunes the search. None of the fields change the reported
// difference.
type Config struct {
	// Workers is the number of goroutines the top-level branches are fanned
	// out to. 1 searches sequentially.
	Workers int
	// CacheSize bounds the memo cache to that many state digests. 0 means
	// unbounded, a negative value disables memoization.
	CacheSize int
	// Symmetry keys the cache on groups sorted into canonical order, so
	// states differing only by a permutation of groups are solved once. It
	// may report a different partition among tied optima.
	Symmetry bool
}

// DefaultConfig returns an unbounded, exact-keyed configuration using one
// worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
	}
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be > 0 (got %d)", ErrInvalidConfiguration, c.Workers)
	}
	return nil
}

func (c Config) newCache() Cache {
	switch {
	case c.CacheSize < 0:
		return NoCache()
	case c.CacheSize == 0:
		return NewMapCache()
	}
	lc, err := NewLRUCache(c.CacheSize)
	if err != nil {
		// unreachable: size is positive here
		panic(err)
	}
	return lc
}

// Option customizes a Solver.
type Option func(*Solver)

// WithLogger sets the logger search progress is reported to. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache makes every Solve call use c instead of a fresh per-call cache.
// Keys include the group count, so c may be shared across group counts.
func WithCache(c Cache) Option {
	return func(s *Solver) {
		s.cache = c
	}
}
