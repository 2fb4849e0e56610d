package setlist

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"arrangio/internal/partition"
)

var (
	// ErrInvalidSong is wrapped by every ValidationError.
	ErrInvalidSong = errors.New("invalid song")
	// ErrInvalidSetlist reports a setlist file that cannot be read as a
	// whole: malformed syntax, unknown format, wrong field types.
	ErrInvalidSetlist = errors.New("invalid setlist")
)

var (
	labelPattern    = regexp.MustCompile(`^\w+$`)
	durationPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(\d+)s$`)
)

// ValidationError describes a song that could not be parsed.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid song information (%s)", e.Input)
	}
	return fmt.Sprintf("invalid song information (%s): %s", e.Input, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSong }

// ParseDuration reads a [Hh][Mm]Ss duration such as 1h02m03s, 3m27s or 45s
// into seconds. The fields are clock fields: hours up to 23, minutes and
// seconds up to 59.
func ParseDuration(s string) (int64, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("duration %q does not match [HHh][MMm]SSs", s)
	}
	fields := []struct {
		raw   string
		limit int64
		unit  int64
		name  string
	}{
		{m[1], 23, 3600, "hours"},
		{m[2], 59, 60, "minutes"},
		{m[3], 59, 1, "seconds"},
	}
	var total int64
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		v, err := strconv.ParseInt(f.raw, 10, 64)
		if err != nil || v > f.limit {
			return 0, fmt.Errorf("%s out of range in %q (max %d)", f.name, s, f.limit)
		}
		total += v * f.unit
	}
	return total, nil
}

// ParseSong parses a single LABEL:HHhMMmSSs token.
func ParseSong(token string) (partition.Item, error) {
	label, duration, ok := strings.Cut(token, ":")
	if !ok || !labelPattern.MatchString(label) {
		return partition.Item{}, &ValidationError{Input: token}
	}
	secs, err := ParseDuration(duration)
	if err != nil {
		return partition.Item{}, &ValidationError{Input: token, Reason: err.Error()}
	}
	return partition.Item{Duration: secs, Label: label}, nil
}

// ParseSongs parses every token and returns the items sorted.
func ParseSongs(tokens []string) ([]partition.Item, error) {
	items := make([]partition.Item, 0, len(tokens))
	for _, tok := range tokens {
		it, err := ParseSong(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	Sort(items)
	return items, nil
}

// Sort orders items by descending duration, then descending label.
func Sort(items []partition.Item) {
	slices.SortStableFunc(items, func(a, b partition.Item) int {
		if c := cmp.Compare(b.Duration, a.Duration); c != 0 {
			return c
		}
		return strings.Compare(b.Label, a.Label)
	})
}

// songEntry is a song given as separate fields in a setlist file.
type songEntry struct {
	Label    string
	Duration string
	Seconds  *int64
}

func (e songEntry) item() (partition.Item, error) {
	if !labelPattern.MatchString(e.Label) {
		return partition.Item{}, &ValidationError{Input: e.Label, Reason: "label must be a non-empty word"}
	}
	switch {
	case e.Seconds != nil && e.Duration != "":
		return partition.Item{}, &ValidationError{Input: e.Label, Reason: "both duration and seconds set"}
	case e.Seconds != nil:
		if *e.Seconds < 0 {
			return partition.Item{}, &ValidationError{Input: e.Label, Reason: "seconds must not be negative"}
		}
		return partition.Item{Duration: *e.Seconds, Label: e.Label}, nil
	}
	secs, err := ParseDuration(e.Duration)
	if err != nil {
		return partition.Item{}, &ValidationError{Input: e.Label + ":" + e.Duration, Reason: err.Error()}
	}
	return partition.Item{Duration: secs, Label: e.Label}, nil
}
