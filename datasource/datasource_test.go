package datasource

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// seedSentinel writes just enough of the on-disk layout (the data/
// dataPaths.json sentinel) for Dir to treat the tree as already fetched,
// without touching the network.
func seedSentinel(t *testing.T, base string) {
	t.Helper()
	dataDir := filepath.Join(base, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, sentinel), []byte(`{}`), 0o644))
}

func TestDirReturnsCachedTreeWithoutFetching(t *testing.T) {
	base := t.TempDir()
	seedSentinel(t, base)

	root := New(WithCacheDir(base))
	dir, err := root.Dir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "data"), dir)
}

func TestDirMemoizesAcrossCalls(t *testing.T) {
	base := t.TempDir()
	seedSentinel(t, base)

	root := New(WithCacheDir(base))
	first, err := root.Dir()
	require.NoError(t, err)
	second, err := root.Dir()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDirCollapsesConcurrentCallers(t *testing.T) {
	base := t.TempDir()
	seedSentinel(t, base)

	root := New(WithCacheDir(base))

	const n = 16
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = root.Dir()
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, results[0], results[i])
	}
}
