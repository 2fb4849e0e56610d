package setlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrangio/internal/partition"
)

var wantItems = []partition.Item{
	{Duration: 354, Label: "song05"},
	{Duration: 241, Label: "song02"},
	{Duration: 204, Label: "song01"},
}

const jsonSetlist = `{
  "groups": 3,
  "songs": [
    "song01:3m24s",
    {"label": "song02", "seconds": 241},
    {"label": "song05", "duration": "5m54s"}
  ]
}`

const yamlSetlist = `groups: 3
songs:
  - song01:3m24s
  - {label: song02, seconds: 241}
  - label: song05
    duration: 5m54s
`

const hclSetlist = `groups = 3

song "song01" {
  duration = "3m24s"
}

song "song02" {
  duration = 241
}

song "song05" {
  duration = "5m54s"
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	files := map[string]string{
		"set.json": jsonSetlist,
		"set.yaml": yamlSetlist,
		"set.YML":  yamlSetlist,
		"set.hcl":  hclSetlist,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			sl, err := Load(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, 3, sl.Groups)
			assert.Equal(t, wantItems, sl.Items)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "set.txt", "song01:1s"))
	require.ErrorIs(t, err, ErrInvalidSetlist)
}

func TestParseJSON(t *testing.T) {
	sl, err := ParseJSON([]byte(`{"songs": ["a:1s"]}`))
	require.NoError(t, err)
	assert.Zero(t, sl.Groups, "groups unset")
	assert.Equal(t, []partition.Item{{Duration: 1, Label: "a"}}, sl.Items)

	sl, err = ParseJSON([]byte(`{"groups": 3.0, "songs": [{"label": "a", "seconds": 4e1}]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, sl.Groups)
	assert.Equal(t, []partition.Item{{Duration: 40, Label: "a"}}, sl.Items)

	invalidSetlist := []string{
		`{"songs": [`,
		`["a:1s"]`,
		`{"groups": "two", "songs": []}`,
		`{"groups": 0, "songs": ["a:1s"]}`,
		`{"groups": 2.5, "songs": ["a:1s"]}`,
		`{"groups": 1e300, "songs": ["a:1s"]}`,
		`{"songs": "a:1s"}`,
	}
	for _, in := range invalidSetlist {
		_, err := ParseJSON([]byte(in))
		require.ErrorIs(t, err, ErrInvalidSetlist, in)
	}

	invalidSong := []string{
		`{"songs": ["a:1m"]}`,
		`{"songs": [42]}`,
		`{"songs": [{"label": "a"}]}`,
		`{"songs": [{"label": "a", "seconds": -3}]}`,
		`{"songs": [{"label": "a", "seconds": "3"}]}`,
		`{"songs": [{"label": "a", "seconds": 3.5}]}`,
		`{"songs": [{"label": "a", "seconds": 3, "duration": "3s"}]}`,
		`{"songs": [{"label": "no label", "seconds": 3}]}`,
	}
	for _, in := range invalidSong {
		_, err := ParseJSON([]byte(in))
		require.ErrorIs(t, err, ErrInvalidSong, in)
	}
}

func TestParseYAML(t *testing.T) {
	sl, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, sl.Items)

	_, err = ParseYAML([]byte("groups: 2\ntracks: []\n"))
	require.ErrorIs(t, err, ErrInvalidSetlist)

	_, err = ParseYAML([]byte("groups: -1\n"))
	require.ErrorIs(t, err, ErrInvalidSetlist)

	_, err = ParseYAML([]byte("songs:\n  - [a, b]\n"))
	require.ErrorIs(t, err, ErrInvalidSong)

	_, err = ParseYAML([]byte("songs:\n  - a:61s\n"))
	require.ErrorIs(t, err, ErrInvalidSong)
}

func TestParseHCL(t *testing.T) {
	_, err := ParseHCL([]byte(`song "a" {`), "broken.hcl")
	require.ErrorIs(t, err, ErrInvalidSetlist)

	_, err = ParseHCL([]byte(`song "a" {}`), "missing.hcl")
	require.ErrorIs(t, err, ErrInvalidSetlist)

	_, err = ParseHCL([]byte(`song "a" { duration = 1.5 }`), "fraction.hcl")
	require.ErrorIs(t, err, ErrInvalidSong)

	_, err = ParseHCL([]byte(`song "a" { duration = true }`), "bool.hcl")
	require.ErrorIs(t, err, ErrInvalidSong)

	_, err = ParseHCL([]byte(`song "a" { duration = "2m" }`), "token.hcl")
	require.ErrorIs(t, err, ErrInvalidSong)

	sl, err := ParseHCL([]byte(`song "a" { duration = 0 }`), "zero.hcl")
	require.NoError(t, err)
	assert.Zero(t, sl.Groups)
	assert.Equal(t, []partition.Item{{Duration: 0, Label: "a"}}, sl.Items)
}
