package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{}, CreateRankList(0))
	assert.Equal(t, []uint16{}, CreateRankList(-3))
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
}

func TestClampLimit(t *testing.T) {
	testCases := []struct {
		limit, fallback, max, want int
	}{
		{0, 24, 256, 24},
		{-1, 24, 256, 24},
		{10, 24, 256, 10},
		{1000, 24, 256, 256},
		{1000, 24, 0, 1000},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ClampLimit(tc.limit, tc.fallback, tc.max), "%+v", tc)
	}
}

func TestSaveAndLoadTOMLFile(t *testing.T) {
	type section struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
	}
	type doc struct {
		Section section `toml:"section"`
	}
	path := filepath.Join(t.TempDir(), "out.toml")

	require.NoError(t, SaveTOMLFile(doc{section{"arrows", 3}}, path))

	var got doc
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, "arrows", got.Section.Name)
	assert.Equal(t, 3, got.Section.Count)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nn = 3\ns = \"x\"\n"), 0644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	section, ok := ExtractSection(data, "a")
	require.True(t, ok)

	n, ok := ExtractInt64(section, "n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	s, ok := ExtractString(section, "s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = ExtractString(section, "n")
	assert.False(t, ok)
	_, ok = ExtractSection(data, "missing")
	assert.False(t, ok)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "symbols.json"), ExpandHome("~/symbols.json"))
	assert.Equal(t, "/etc/symbols.json", ExpandHome("/etc/symbols.json"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	result := CheckDirStatus(dir)
	assert.True(t, result.Exists)
	assert.True(t, result.Writable)
	assert.NoError(t, result.Error)
	assert.True(t, FileExists(dir))
}
