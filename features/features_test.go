package features

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockdata-go/mcdata/datasource"
	"github.com/blockdata-go/mcdata/internal/testfixture"
	"github.com/blockdata-go/mcdata/mcpaths"
	"github.com/blockdata-go/mcdata/version"
)

func newEngine(t *testing.T) (*Engine, *version.Registry) {
	t.Helper()
	base := t.TempDir()
	testfixture.Write(t, base)
	root := datasource.New(datasource.WithCacheDir(base))
	loader := mcpaths.New(root)
	registry := version.New(loader)
	return New(registry, loader), registry
}

func TestSimpleRangeFeature(t *testing.T) {
	e, reg := newEngine(t)

	v1152, err := reg.Resolve("1.15.2")
	require.NoError(t, err)
	val, err := e.Supports(v1152, "dimensionIsAnInt")
	require.NoError(t, err)
	b, ok := val.Bool()
	require.True(t, ok)
	require.True(t, b)

	v1182, err := reg.Resolve("1.18.2")
	require.NoError(t, err)
	val, err = e.Supports(v1182, "dimensionIsAnInt")
	require.NoError(t, err)
	b, ok = val.Bool()
	require.True(t, ok)
	require.False(t, b)
}

func TestValuesRangeFeature(t *testing.T) {
	e, reg := newEngine(t)

	v1152, err := reg.Resolve("1.15.2")
	require.NoError(t, err)
	val, err := e.Supports(v1152, "metadataIxOfItem")
	require.NoError(t, err)
	f, ok := val.Float64()
	require.True(t, ok)
	require.Equal(t, 7.0, f)

	v1182, err := reg.Resolve("1.18.2")
	require.NoError(t, err)
	val, err = e.Supports(v1182, "metadataIxOfItem")
	require.NoError(t, err)
	f, ok = val.Float64()
	require.True(t, ok)
	require.Equal(t, 8.0, f)
}

func TestUnknownFeatureNameIsFalse(t *testing.T) {
	e, reg := newEngine(t)
	v, err := reg.Resolve("1.18.2")
	require.NoError(t, err)

	val, err := e.Supports(v, "totally_unknown_feature")
	require.NoError(t, err)
	b, ok := val.Bool()
	require.True(t, ok)
	require.False(t, b)
}

func TestLatestEndpointResolvesToNewestOverall(t *testing.T) {
	e, reg := newEngine(t)
	v, err := reg.Resolve("1.19")
	require.NoError(t, err)

	val, err := e.Supports(v, "metadataIxOfItem")
	require.NoError(t, err)
	f, ok := val.Float64()
	require.True(t, ok)
	require.Equal(t, 8.0, f)
}
