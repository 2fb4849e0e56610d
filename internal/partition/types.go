package partition

import "slices"

// Item is a labeled duration in seconds.
type Item struct {
	Duration int64
	Label    string
}

// Group accumulates items. Total is the sum of the member durations.
type Group struct {
	Total   int64
	Members []Item
}

// With returns a copy of g with it appended. g is left untouched.
func (g Group) With(it Item) Group {
	members := make([]Item, len(g.Members), len(g.Members)+1)
	copy(members, g.Members)
	return Group{
		Total:   g.Total + it.Duration,
		Members: append(members, it),
	}
}

// Partition is an ordered, fixed-size collection of groups.
type Partition []Group

// NewPartition returns k empty groups.
func NewPartition(k int) Partition {
	p := make(Partition, k)
	for i := range p {
		p[i].Members = []Item{}
	}
	return p
}

// Assign returns a new partition where group i received it. Groups other
// than i share storage with p; groups are never mutated in place.
func (p Partition) Assign(i int, it Item) Partition {
	next := make(Partition, len(p))
	copy(next, p)
	next[i] = p[i].With(it)
	return next
}

// Difference is the largest group total minus the smallest one.
func (p Partition) Difference() int64 {
	if len(p) == 0 {
		return 0
	}
	lo, hi := p[0].Total, p[0].Total
	for _, g := range p[1:] {
		lo = min(lo, g.Total)
		hi = max(hi, g.Total)
	}
	return hi - lo
}

// Totals returns the group totals in partition order.
func (p Partition) Totals() []int64 {
	out := make([]int64, len(p))
	for i, g := range p {
		out[i] = g.Total
	}
	return out
}

// Items flattens the partition back into the items it holds, group by group.
func (p Partition) Items() []Item {
	var out []Item
	for _, g := range p {
		out = append(out, g.Members...)
	}
	return out
}

// Clone deep-copies the partition.
func (p Partition) Clone() Partition {
	if p == nil {
		return nil
	}
	out := make(Partition, len(p))
	for i, g := range p {
		out[i] = Group{Total: g.Total, Members: slices.Clone(g.Members)}
		if out[i].Members == nil {
			out[i].Members = []Item{}
		}
	}
	return out
}

// Result is the outcome of a search: the best partition found and its
// difference.
type Result struct {
	Difference int64
	Partition  Partition
}
