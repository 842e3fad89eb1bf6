package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"A","symbols":[{"name":"X","value":"x"}]}]`), 0644))

	reloaded := make(chan *Catalog, 4)
	w, err := NewWatcher(path, language.English, func(c *Catalog) { reloaded <- c })
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	w.Start()
	t.Cleanup(func() { w.Stop() })

	// An invalid file must not reach the callback.
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"All","symbols":[]}]`), 0644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"B","symbols":[{"name":"Y","value":"y"}]}]`), 0644))

	select {
	case c := <-reloaded:
		assert.Equal(t, []string{"B"}, c.GroupNames())
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "symbols.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	reloaded := make(chan *Catalog, 1)
	w, err := NewWatcher(path, language.English, func(c *Catalog) { reloaded <- c })
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	w.Start()
	t.Cleanup(func() { w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0644))

	select {
	case <-reloaded:
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}
