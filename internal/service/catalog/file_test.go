package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
)

const sampleCatalog = `
restaurants:
  - id: 869c848c-7a58-4ed6-ab88-72ee2e8e677c
    name: Pho Bac
    cuisine: Vietnamese
  - id: e8036613-4b72-46f6-ab5e-edd2fc7c4fe4
    name: " Golden Lotus Kitchen "
`

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParse(t *testing.T) {
	items, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Pho Bac", items[0].Name)
	assert.Equal(t, "Vietnamese", items[0].Cuisine)
	assert.Equal(t, "Golden Lotus Kitchen", items[1].Name)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":     "restaurants: [",
		"missing id": "restaurants:\n  - name: Nameless\n",
		"empty name": "restaurants:\n  - id: r1\n    name: \"\"\n",
		"duplicate":  "restaurants:\n  - id: r1\n    name: A\n  - id: r1\n    name: B\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWatcher_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, sampleCatalog)

	store := catalog.NewMemoryStore(nil)
	w := NewWatcher(path, store)
	require.NoError(t, w.Reload())
	assert.Equal(t, 2, store.Len())

	writeCatalog(t, path, "restaurants: [")
	assert.Error(t, w.Reload())
	assert.Equal(t, 2, store.Len())
}

func TestWatcher_PicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, sampleCatalog)

	store := catalog.NewMemoryStore(nil)
	w := NewWatcher(path, store)
	w.debounce = 10 * time.Millisecond
	require.NoError(t, w.Reload())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	writeCatalog(t, path, "restaurants:\n  - id: only\n    name: Only One\n")

	require.Eventually(t, func() bool {
		_, ok := store.FindByID("only")
		return ok && store.Len() == 1
	}, 5*time.Second, 20*time.Millisecond)
}
