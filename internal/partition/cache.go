package partition

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/puzpuzpuz/xsync/v4"
)

// Cache memoizes search results by state. Implementations must be safe for
// concurrent use. A cache is an optimization only: a miss repeats work and
// never changes the outcome.
type Cache interface {
	Load(k Key) (Result, bool)
	Store(k Key, r Result)
	// Len reports the number of distinct state digests held.
	Len() int
}

// entry is one state stored under a digest. Digest collisions land in the
// same bucket and are told apart by fingerprint.
type entry struct {
	fp     string
	result Result
}

type bucket struct {
	mu      sync.RWMutex
	entries []entry
}

func (b *bucket) find(fp string) (Result, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.entries {
		if b.entries[i].fp == fp {
			return b.entries[i].result, true
		}
	}
	return Result{}, false
}

// put keeps the first result stored for fp.
func (b *bucket) put(fp string, r Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		if b.entries[i].fp == fp {
			return
		}
	}
	b.entries = append(b.entries, entry{fp: fp, result: r})
}

// ── Unbounded ───────────────────────────────────────────────────────

// MapCache is an unbounded concurrent cache.
type MapCache struct {
	m *xsync.Map[uint64, *bucket]
}

var _ Cache = (*MapCache)(nil)

// NewMapCache returns an empty unbounded cache.
func NewMapCache() *MapCache {
	return &MapCache{m: xsync.NewMap[uint64, *bucket]()}
}

func (c *MapCache) Load(k Key) (Result, bool) {
	b, ok := c.m.Load(k.Hash)
	if !ok {
		return Result{}, false
	}
	return b.find(k.fp)
}

func (c *MapCache) Store(k Key, r Result) {
	b, ok := c.m.Load(k.Hash)
	if !ok {
		b, _ = c.m.LoadOrStore(k.Hash, &bucket{})
	}
	b.put(k.fp, r)
}

func (c *MapCache) Len() int { return c.m.Size() }

// ── Bounded ─────────────────────────────────────────────────────────

// LRUCache keeps at most size digests, evicting the least recently used.
type LRUCache struct {
	c *lru.Cache[uint64, *bucket]
}

var _ Cache = (*LRUCache)(nil)

// NewLRUCache returns a bounded cache. size must be positive.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[uint64, *bucket](size)
	if err != nil {
		return nil, fmt.Errorf("%w: lru cache: %w", ErrInvalidConfiguration, err)
	}
	return &LRUCache{c: c}, nil
}

func (c *LRUCache) Load(k Key) (Result, bool) {
	b, ok := c.c.Get(k.Hash)
	if !ok {
		return Result{}, false
	}
	return b.find(k.fp)
}

func (c *LRUCache) Store(k Key, r Result) {
	b, ok := c.c.Get(k.Hash)
	if !ok {
		fresh := &bucket{}
		prev, found, _ := c.c.PeekOrAdd(k.Hash, fresh)
		if found {
			b = prev
		} else {
			b = fresh
		}
	}
	b.put(k.fp, r)
}

func (c *LRUCache) Len() int { return c.c.Len() }

// ── Disabled ────────────────────────────────────────────────────────

type noCache struct{}

// NoCache returns a cache that never holds anything.
func NoCache() Cache { return noCache{} }

func (noCache) Load(Key) (Result, bool) { return Result{}, false }
func (noCache) Store(Key, Result)       {}
func (noCache) Len() int                { return 0 }
