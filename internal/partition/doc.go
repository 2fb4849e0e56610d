// Package partition is an exact solver for balanced multiway number
// partitioning: it distributes labeled durations over a fixed number of
// groups so that the spread between the heaviest and the lightest group is
// as small as possible.
//
// The search is exhaustive and memoized on the exact search state (the items
// still to place plus the partition built so far). It is meant for inputs in
// the tens of items; the state space grows exponentially with the item count.
//
// Callers should pass items sorted by descending duration. The order does not
// change the optimum, only how quickly it is found and which of several tied
// partitions is reported.
package partition
