package partition

import (
	"sync/atomic"
	"time"
)

// Stats describes the work done by one Solve call.
type Stats struct {
	// States is the number of inner search states visited.
	States int64
	// Leaves is the number of complete partitions evaluated.
	Leaves      int64
	CacheHits   int64
	CacheStores int64
	Elapsed     time.Duration
}

type counters struct {
	states, leaves, hits, stores atomic.Int64
}

func (c *counters) snapshot(elapsed time.Duration) Stats {
	return Stats{
		States:      c.states.Load(),
		Leaves:      c.leaves.Load(),
		CacheHits:   c.hits.Load(),
		CacheStores: c.stores.Load(),
		Elapsed:     elapsed,
	}
}
