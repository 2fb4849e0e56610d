package setlist

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"arrangio/internal/partition"
)

// ParseJSON reads a JSON setlist:
//
//	{"groups": 2, "songs": ["song01:3m24s", {"label": "song02", "seconds": 241}]}
//
// Songs are LABEL:HHhMMmSSs strings or objects with a label and either a
// duration string or a number of seconds.
func ParseJSON(data []byte) (*Setlist, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidSetlist)
	}
	return FromGJSON(gjson.ParseBytes(data))
}

// FromGJSON decodes a setlist object that has already been parsed, such as
// a request body.
func FromGJSON(root gjson.Result) (*Setlist, error) {
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidSetlist)
	}
	sl := &Setlist{}

	groups := root.Get("groups")
	if groups.Exists() {
		if !isInteger(groups) {
			return nil, fmt.Errorf("%w: groups must be an integer (got %s)", ErrInvalidSetlist, groups.Raw)
		}
		sl.Groups = int(groups.Int())
	}

	songs := root.Get("songs")
	if songs.Exists() && !songs.IsArray() {
		return nil, fmt.Errorf("%w: songs must be an array", ErrInvalidSetlist)
	}
	var songErr error
	songs.ForEach(func(_, v gjson.Result) bool {
		it, err := jsonSong(v)
		if err != nil {
			songErr = err
			return false
		}
		sl.Items = append(sl.Items, it)
		return true
	})
	if songErr != nil {
		return nil, songErr
	}
	return sl.finish(groups.Exists())
}

func jsonSong(v gjson.Result) (partition.Item, error) {
	switch {
	case v.Type == gjson.String:
		return ParseSong(v.String())
	case v.IsObject():
		e := songEntry{
			Label:    v.Get("label").String(),
			Duration: v.Get("duration").String(),
		}
		if s := v.Get("seconds"); s.Exists() {
			if !isInteger(s) {
				return partition.Item{}, &ValidationError{Input: e.Label, Reason: "seconds must be an integer"}
			}
			n := s.Int()
			e.Seconds = &n
		}
		return e.item()
	}
	return partition.Item{}, &ValidationError{Input: v.Raw, Reason: "expected a string or an object"}
}

// isInteger reports whether v is a JSON number without a fractional part
// that fits an int64.
func isInteger(v gjson.Result) bool {
	return v.Type == gjson.Number && v.Num == math.Trunc(v.Num) &&
		v.Num >= math.MinInt64 && v.Num < math.MaxInt64
}
