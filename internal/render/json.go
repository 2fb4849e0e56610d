package render

import (
	"encoding/json"
	"io"

	"arrangio/internal/partition"
)

// Document is the JSON form of a result. Lengths are in seconds.
type Document struct {
	Difference int64      `json:"difference"`
	Groups     []GroupDoc `json:"groups"`
}

// GroupDoc is one group of a Document. IDs start at 0.
type GroupDoc struct {
	ID     int       `json:"id"`
	Length int64     `json:"length"`
	Songs  []SongDoc `json:"songs"`
}

// SongDoc is one song of a group.
type SongDoc struct {
	Name   string `json:"name"`
	Length int64  `json:"length"`
}

// NewDocument converts r. Empty groups get an empty, non-null songs list.
func NewDocument(r partition.Result) Document {
	doc := Document{
		Difference: r.Difference,
		Groups:     make([]GroupDoc, len(r.Partition)),
	}
	for gi, g := range r.Partition {
		songs := make([]SongDoc, len(g.Members))
		for i, it := range g.Members {
			songs[i] = SongDoc{Name: it.Label, Length: it.Duration}
		}
		doc.Groups[gi] = GroupDoc{ID: gi, Length: g.Total, Songs: songs}
	}
	return doc
}

// JSON writes r as a Document followed by a newline, indented when indent is
// set.
func JSON(w io.Writer, r partition.Result, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(NewDocument(r))
}
