package partition

import "errors"

// ErrInvalidConfiguration is returned when no partition can be formed, i.e.
// for a group count below one, or when a solver Config is unusable.
var ErrInvalidConfiguration = errors.New("partition: invalid configuration")
