package setlist

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"arrangio/internal/partition"
)

type hclSetlist struct {
	Groups *int      `hcl:"groups,optional"`
	Songs  []hclSong `hcl:"song,block"`
}

type hclSong struct {
	Label    string    `hcl:"label,label"`
	Duration cty.Value `hcl:"duration"`
}

// ParseHCL reads an HCL setlist:
//
//	groups = 2
//
//	song "song01" {
//	  duration = "3m24s"
//	}
//
//	song "song02" {
//	  duration = 241
//	}
//
// A duration is either a [HHh][MMm]SSs string or a number of seconds.
func ParseHCL(data []byte, filename string) (*Setlist, error) {
	f, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetlist, diags)
	}

	var doc hclSetlist
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetlist, diags)
	}

	sl := &Setlist{}
	if doc.Groups != nil {
		sl.Groups = *doc.Groups
	}
	for _, s := range doc.Songs {
		it, err := s.item()
		if err != nil {
			return nil, err
		}
		sl.Items = append(sl.Items, it)
	}
	return sl.finish(doc.Groups != nil)
}

func (s hclSong) item() (partition.Item, error) {
	v := s.Duration
	if v.IsNull() || !v.IsKnown() {
		return partition.Item{}, &ValidationError{Input: s.Label, Reason: "duration must be set"}
	}

	e := songEntry{Label: s.Label}
	switch v.Type() {
	case cty.String:
		e.Duration = v.AsString()
	case cty.Number:
		var secs int64
		if err := gocty.FromCtyValue(v, &secs); err != nil {
			return partition.Item{}, &ValidationError{Input: s.Label, Reason: "duration must be a whole number of seconds"}
		}
		e.Seconds = &secs
	default:
		return partition.Item{}, &ValidationError{
			Input:  s.Label,
			Reason: fmt.Sprintf("duration must be a string or a number, not %s", v.Type().FriendlyName()),
		}
	}
	return e.item()
}
