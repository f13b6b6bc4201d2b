package version

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockdata-go/mcdata/datasource"
	"github.com/blockdata-go/mcdata/edition"
	"github.com/blockdata-go/mcdata/internal/testfixture"
	"github.com/blockdata-go/mcdata/mcerr"
	"github.com/blockdata-go/mcdata/mcpaths"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	base := t.TempDir()
	testfixture.Write(t, base)
	root := datasource.New(datasource.WithCacheDir(base))
	loader := mcpaths.New(root)
	return New(loader)
}

func TestResolveExactVersion(t *testing.T) {
	r := newRegistry(t)
	v, err := r.Resolve("1.18.2")
	require.NoError(t, err)
	require.Equal(t, "1.18.2", v.MinecraftVersion)
	require.Equal(t, edition.PC, v.Edition)
}

func TestResolvePrefixedVersion(t *testing.T) {
	r := newRegistry(t)
	unprefixed, err := r.Resolve("1.18.2")
	require.NoError(t, err)
	prefixed, err := r.Resolve("pc_1.18.2")
	require.NoError(t, err)
	require.Equal(t, unprefixed, prefixed)
}

func TestResolveMajorVersion(t *testing.T) {
	r := newRegistry(t)
	v, err := r.Resolve("1.18")
	require.NoError(t, err)
	require.Equal(t, "release", v.ReleaseType)
	require.Equal(t, "1.18", v.MajorVersion)
}

func TestResolveProtocolNumber(t *testing.T) {
	r := newRegistry(t)
	v, err := r.Resolve("758")
	require.NoError(t, err)
	require.Equal(t, "1.18.2", v.MinecraftVersion)
}

func TestResolveInvalidVersion(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Resolve("not_a_real_version")
	var target *mcerr.InvalidVersion
	require.ErrorAs(t, err, &target)
}

func TestSynthesizedDataVersionOrdering(t *testing.T) {
	r := newRegistry(t)
	older, err := r.Resolve("1.8.8")
	require.NoError(t, err)
	newer, err := r.Resolve("1.8.9")
	require.NoError(t, err)
	require.Negative(t, older.DataVersion)
	require.Negative(t, newer.DataVersion)
	require.Less(t, older.DataVersion, newer.DataVersion)

	isOlder, err := older.IsOlderThan(newer)
	require.NoError(t, err)
	require.True(t, isOlder)
}

func TestResolveIsIdempotentThroughItsOwnOutput(t *testing.T) {
	r := newRegistry(t)
	v, err := r.Resolve("1.18.2")
	require.NoError(t, err)

	again, err := r.Resolve(v.MinecraftVersion)
	require.NoError(t, err)
	require.Equal(t, v, again)
}

func TestCrossEditionCompareIsAnError(t *testing.T) {
	a := Version{Edition: edition.PC, DataVersion: 10}
	b := Version{Edition: edition.Bedrock, DataVersion: 10}
	_, err := a.Compare(b)
	var target *mcerr.Internal
	require.ErrorAs(t, err, &target)
}

func TestSupportedVersionsExcludesMajorKeysAndSortsAscending(t *testing.T) {
	r := newRegistry(t)
	list, err := r.SupportedVersions(edition.PC)
	require.NoError(t, err)

	require.Contains(t, list, "1.18.2")
	require.Contains(t, list, "1.8.8")
	require.NotContains(t, list, "1.18")

	for i := 1; i < len(list); i++ {
		require.True(t, lessVersionString(list[i-1], list[i]) || list[i-1] == list[i])
	}
}
