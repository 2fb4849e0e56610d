package partition

import (
	"cmp"
	"slices"
	"strings"
)

// Compare orders results for tie-breaking. Lower difference wins. Equal
// differences fall back to comparing the partitions group by group in
// partition order: a group is smaller when its total is smaller, then when
// its member sequence is smaller item by item (duration, then label), a
// strict prefix sorting first.
//
// The solver always reports the smallest result under this order, which
// makes the chosen partition among several optimal ones reproducible.
func Compare(a, b Result) int {
	if c := cmp.Compare(a.Difference, b.Difference); c != 0 {
		return c
	}
	return comparePartitions(a.Partition, b.Partition)
}

func comparePartitions(a, b Partition) int {
	return slices.CompareFunc(a, b, compareGroups)
}

func compareGroups(a, b Group) int {
	if c := cmp.Compare(a.Total, b.Total); c != 0 {
		return c
	}
	return slices.CompareFunc(a.Members, b.Members, compareItems)
}

func compareItems(a, b Item) int {
	if c := cmp.Compare(a.Duration, b.Duration); c != 0 {
		return c
	}
	return strings.Compare(a.Label, b.Label)
}
