package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockdata-go/mcdata/datasource"
	"github.com/blockdata-go/mcdata/features"
	"github.com/blockdata-go/mcdata/internal/testfixture"
	"github.com/blockdata-go/mcdata/mcpaths"
	"github.com/blockdata-go/mcdata/version"
)

type harness struct {
	loader   *mcpaths.Loader
	registry *version.Registry
	engine   *features.Engine
	cache    *Cache
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	base := t.TempDir()
	testfixture.Write(t, base)
	root := datasource.New(datasource.WithCacheDir(base))
	loader := mcpaths.New(root)
	registry := version.New(loader)
	engine := features.New(registry, loader)
	return &harness{
		loader:   loader,
		registry: registry,
		engine:   engine,
		cache:    NewCache(loader, registry, engine, nil),
	}
}

func TestLoadIndexesStoneAndStick(t *testing.T) {
	h := newHarness(t)
	v, err := h.registry.Resolve("1.18.2")
	require.NoError(t, err)

	data, err := h.cache.Get(v)
	require.NoError(t, err)

	stone, ok := data.BlocksByName["stone"]
	require.True(t, ok)
	require.Equal(t, 1, stone.ID)
	require.Contains(t, data.ItemsByName, "stick")

	_, ok = data.BlocksByStateID[stone.DefaultState]
	require.True(t, ok)

	apple, ok := data.FoodsByName["apple"]
	require.True(t, ok)
	require.Equal(t, 4.0, apple.FoodPoints)
}

func TestBlockShapes(t *testing.T) {
	h := newHarness(t)
	v, err := h.registry.Resolve("1.18.2")
	require.NoError(t, err)
	data, err := h.cache.Get(v)
	require.NoError(t, err)

	require.Equal(t, []AABB{{0, 0, 0, 1, 1, 1}}, data.BlockShapesByName["stone"])

	slab := data.BlocksByName["oak_slab"]
	require.Equal(t, []AABB{{0, 0, 0, 1, 0.5, 1}}, data.BlockShapesByName["oak_slab"])
	require.Equal(t, []AABB{{0, 0.5, 0, 1, 1, 1}}, data.BlockShapesByStateID[slab.MinStateID+1])

	_, ok := data.BlockShapesByName["air"]
	require.False(t, ok)
}

func TestMajorVersionResolution(t *testing.T) {
	h := newHarness(t)
	v, err := h.registry.Resolve("1.19")
	require.NoError(t, err)
	data, err := h.cache.Get(v)
	require.NoError(t, err)

	require.Contains(t, data.Version.MinecraftVersion, "1.19")
	require.Contains(t, data.BlocksByName, "mangrove_log")
	require.Contains(t, data.EntitiesByName, "warden")
}

func TestLegacyBlockDropDecodesStructuredElement(t *testing.T) {
	h := newHarness(t)
	v, err := h.registry.Resolve("1.8.8")
	require.NoError(t, err)
	data, err := h.cache.Get(v)
	require.NoError(t, err)

	stone := data.BlocksByName["stone"]
	require.Len(t, stone.Drops, 1)
	require.Nil(t, stone.Drops[0].ID)
	require.NotNil(t, stone.Drops[0].Element)
	require.NotNil(t, stone.Drops[0].Element.Drop.ID)
	require.Equal(t, 4, *stone.Drops[0].Element.Drop.ID)

	// Predates explicit state ids: id=1 synthesizes a 16-state range.
	require.Equal(t, 16, stone.MinStateID)
	require.Equal(t, 31, stone.MaxStateID)
	require.Contains(t, data.BlocksByStateID, 20)
}

func TestCacheReturnsSameInstanceForSameVersion(t *testing.T) {
	h := newHarness(t)
	v, err := h.registry.Resolve("1.18.2")
	require.NoError(t, err)

	first, err := h.cache.Get(v)
	require.NoError(t, err)
	second, err := h.cache.Get(v)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestQueryMethods(t *testing.T) {
	h := newHarness(t)
	v, err := h.registry.Resolve("1.18.2")
	require.NoError(t, err)
	data, err := h.cache.Get(v)
	require.NoError(t, err)

	newer, err := data.IsNewerOrEqualTo("1.8.8")
	require.NoError(t, err)
	require.True(t, newer)

	older, err := data.IsOlderThan("1.19")
	require.NoError(t, err)
	require.True(t, older)

	val, err := data.SupportFeature("dimensionIsAnInt")
	require.NoError(t, err)
	b, ok := val.Bool()
	require.True(t, ok)
	require.False(t, b)
}
