package mcpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockdata-go/mcdata/datasource"
	"github.com/blockdata-go/mcdata/edition"
	"github.com/blockdata-go/mcdata/internal/testfixture"
	"github.com/blockdata-go/mcdata/mcerr"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	base := t.TempDir()
	testfixture.Write(t, base)
	root := datasource.New(datasource.WithCacheDir(base))
	return New(root)
}

func TestResolveAndLoad(t *testing.T) {
	l := newLoader(t)

	var blocks []map[string]any
	err := l.ResolveAndLoad(edition.PC, "1.18", "blocks", &blocks)
	require.NoError(t, err)
	require.NotEmpty(t, blocks)
}

func TestResolveMissingDataPath(t *testing.T) {
	l := newLoader(t)

	_, err := l.Resolve(edition.PC, "1.18", "no_such_key")
	var target *mcerr.DataPathNotFound
	require.ErrorAs(t, err, &target)
}

func TestResolveMissingDataFile(t *testing.T) {
	l := newLoader(t)

	_, err := l.Resolve(edition.PC, "1.18", "missing_stem")
	var target *mcerr.DataFileNotFound
	require.ErrorAs(t, err, &target)
}

func TestTableLoadFailureIsMemoizedAsCachedError(t *testing.T) {
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	// The sentinel exists (so datasource.Dir never touches the network)
	// but its content is not valid JSON, so the dataPaths.json load itself
	// fails deterministically.
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "dataPaths.json"), []byte("not json"), 0o644))

	root := datasource.New(datasource.WithCacheDir(base))
	l := New(root)

	_, err1 := l.Resolve(edition.PC, "1.18", "blocks")
	require.Error(t, err1)
	var cached *mcerr.CachedError
	require.False(t, errorsAsCachedError(err1, &cached), "first failure should not itself be a CachedError")

	_, err2 := l.Resolve(edition.PC, "1.18", "blocks")
	require.Error(t, err2)
	require.True(t, errorsAsCachedError(err2, &cached), "second observation of the same failure should be a CachedError")
}

func errorsAsCachedError(err error, target **mcerr.CachedError) bool {
	ce, ok := err.(*mcerr.CachedError)
	if ok {
		*target = ce
	}
	return ok
}
