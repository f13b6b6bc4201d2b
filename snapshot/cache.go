package snapshot

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/blockdata-go/mcdata/events"
	"github.com/blockdata-go/mcdata/features"
	"github.com/blockdata-go/mcdata/mcpaths"
	"github.com/blockdata-go/mcdata/version"
)

// Cache is the process-wide, never-evicting cache of IndexedData snapshots
// keyed by canonical version. It never holds its lock across file I/O or
// JSON parsing: a miss is loaded entirely outside any lock, and the write
// lock is taken only to insert the result (re-checking first, since another
// goroutine may have raced it to completion).
type Cache struct {
	loader        *mcpaths.Loader
	registry      *version.Registry
	featureEngine *features.Engine
	emitter       *events.Emitter
	log           zerolog.Logger

	mu    sync.RWMutex
	byKey map[string]*IndexedData
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger overrides the zerolog.Logger used for diagnostic output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// NewCache returns a Cache backed by loader, registry, and featureEngine.
func NewCache(loader *mcpaths.Loader, registry *version.Registry, featureEngine *features.Engine, emitter *events.Emitter, opts ...Option) *Cache {
	c := &Cache{
		loader:        loader,
		registry:      registry,
		featureEngine: featureEngine,
		emitter:       emitter,
		log:           zerolog.Nop(),
		byKey:         make(map[string]*IndexedData),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the IndexedData for v, loading and indexing it on first
// request. Every subsequent call for the same canonical version (the same
// edition and minecraftVersion) returns the same *IndexedData instance.
func (c *Cache) Get(v version.Version) (*IndexedData, error) {
	key := cacheKey(v)

	c.mu.RLock()
	if d, ok := c.byKey[key]; ok {
		c.mu.RUnlock()
		c.log.Debug().Str("key", key).Msg("snapshot cache hit")
		return d, nil
	}
	c.mu.RUnlock()

	c.log.Info().Str("key", key).Msg("snapshot cache miss, loading")
	d, err := Load(c.loader, c.registry, c.featureEngine, v, c.emitter)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to load snapshot")
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.byKey[key]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.byKey[key] = d
	c.mu.Unlock()
	return d, nil
}

func cacheKey(v version.Version) string {
	return v.Edition.PathPrefix() + "_" + v.MinecraftVersion
}
