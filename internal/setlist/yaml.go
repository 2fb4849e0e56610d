package setlist

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"arrangio/internal/partition"
)

type yamlSetlist struct {
	Groups *int        `yaml:"groups"`
	Songs  []yaml.Node `yaml:"songs"`
}

type yamlSong struct {
	Label    string `yaml:"label"`
	Duration string `yaml:"duration"`
	Seconds  *int64 `yaml:"seconds"`
}

// ParseYAML reads a YAML setlist:
//
//	groups: 2
//	songs:
//	  - song01:3m24s
//	  - {label: song02, seconds: 241}
func ParseYAML(data []byte) (*Setlist, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc yamlSetlist
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetlist, err)
	}

	sl := &Setlist{}
	if doc.Groups != nil {
		sl.Groups = *doc.Groups
	}
	for i := range doc.Songs {
		it, err := yamlItem(&doc.Songs[i])
		if err != nil {
			return nil, err
		}
		sl.Items = append(sl.Items, it)
	}
	return sl.finish(doc.Groups != nil)
}

func yamlItem(n *yaml.Node) (partition.Item, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return ParseSong(n.Value)
	case yaml.MappingNode:
		var s yamlSong
		if err := n.Decode(&s); err != nil {
			return partition.Item{}, &ValidationError{Input: fmt.Sprintf("line %d", n.Line), Reason: err.Error()}
		}
		return songEntry{Label: s.Label, Duration: s.Duration, Seconds: s.Seconds}.item()
	}
	return partition.Item{}, &ValidationError{
		Input:  fmt.Sprintf("line %d", n.Line),
		Reason: "expected a LABEL:HHhMMmSSs string or a mapping",
	}
}
