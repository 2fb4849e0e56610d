package setlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"arrangio/internal/partition"
)

// Setlist is the content of a setlist file.
type Setlist struct {
	// Groups is the group count requested by the file, 0 when unset.
	Groups int
	Items  []partition.Item
}

// Load reads a setlist file, choosing the format from its extension:
// .json, .yaml/.yml or .hcl.
func Load(path string) (*Setlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var sl *Setlist
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		sl, err = ParseJSON(data)
	case ".yaml", ".yml":
		sl, err = ParseYAML(data)
	case ".hcl":
		sl, err = ParseHCL(data, path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidSetlist, path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sl, nil
}

// finish validates the group count and sorts the items.
func (sl *Setlist) finish(groupsSet bool) (*Setlist, error) {
	if groupsSet && sl.Groups < 1 {
		return nil, fmt.Errorf("%w: groups must be at least 1 (got %d)", ErrInvalidSetlist, sl.Groups)
	}
	Sort(sl.Items)
	return sl, nil
}
