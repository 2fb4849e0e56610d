package partition

import (
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"
)

// Key identifies a search state in a Cache. Two keys are equal when their
// fingerprints are byte-identical; Hash is an xxh3 digest of the fingerprint
// used for bucketing only.
type Key struct {
	Hash uint64

	fp string
	// order maps canonical position to group index. nil means the groups
	// were encoded in partition order.
	order []int
}

// Fingerprint returns the exact byte encoding of the state.
func (k Key) Fingerprint() string { return k.fp }

// canonical rewrites r, computed for the keyed state, into the group order
// the key was encoded with.
func (k Key) canonical(r Result) Result {
	if k.order == nil {
		return r
	}
	out := make(Partition, len(k.order))
	for pos, gi := range k.order {
		out[pos] = r.Partition[gi]
	}
	return Result{Difference: r.Difference, Partition: out}
}

// restore is the inverse of canonical.
func (k Key) restore(r Result) Result {
	if k.order == nil {
		return r
	}
	out := make(Partition, len(k.order))
	for pos, gi := range k.order {
		out[gi] = r.Partition[pos]
	}
	return Result{Difference: r.Difference, Partition: out}
}

// itemTable holds the items of one problem encoded once, so a key only has to
// copy the suffix of the items still to place.
type itemTable struct {
	items   []Item
	encoded []byte
	offsets []int // offsets[i] is where items[i] starts; len(items)+1 entries
}

func newItemTable(items []Item) *itemTable {
	t := &itemTable{
		items:   items,
		offsets: make([]int, 0, len(items)+1),
	}
	for _, it := range items {
		t.offsets = append(t.offsets, len(t.encoded))
		t.encoded = appendItem(t.encoded, it)
	}
	t.offsets = append(t.offsets, len(t.encoded))
	return t
}

// key encodes the state (items[depth:], p). With symmetric set the groups are
// encoded in canonical order, so states that only differ by a permutation of
// groups map to the same key.
func (t *itemTable) key(depth int, p Partition, symmetric bool) Key {
	rest := t.encoded[t.offsets[depth]:]
	buf := make([]byte, 0, 16+len(rest)+len(p)*16)
	buf = binary.AppendUvarint(buf, uint64(len(t.items)-depth))
	buf = append(buf, rest...)
	buf = binary.AppendUvarint(buf, uint64(len(p)))

	var order []int
	if symmetric {
		order = canonicalOrder(p)
		for _, gi := range order {
			buf = appendGroup(buf, p[gi])
		}
	} else {
		for _, g := range p {
			buf = appendGroup(buf, g)
		}
	}

	return Key{Hash: xxh3.Hash(buf), fp: string(buf), order: order}
}

func canonicalOrder(p Partition) []int {
	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compareGroups(p[a], p[b])
	})
	return order
}

func appendGroup(buf []byte, g Group) []byte {
	buf = binary.AppendVarint(buf, g.Total)
	buf = binary.AppendUvarint(buf, uint64(len(g.Members)))
	for _, it := range g.Members {
		buf = appendItem(buf, it)
	}
	return buf
}

func appendItem(buf []byte, it Item) []byte {
	buf = binary.AppendVarint(buf, it.Duration)
	buf = binary.AppendUvarint(buf, uint64(len(it.Label)))
	return append(buf, it.Label...)
}
