// Package mcdata is a version-aware data access library for Minecraft game
// metadata: blocks, items, entities, biomes, recipes, protocol, collision
// shapes, and version-range features, all resolved against a version string
// and backed by a process-wide cache of per-version snapshots.
package mcdata

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/blockdata-go/mcdata/datasource"
	"github.com/blockdata-go/mcdata/edition"
	"github.com/blockdata-go/mcdata/events"
	"github.com/blockdata-go/mcdata/features"
	"github.com/blockdata-go/mcdata/mcpaths"
	"github.com/blockdata-go/mcdata/snapshot"
	"github.com/blockdata-go/mcdata/version"
)

// Re-exported types so importers rarely need to reach into subpackages.
type (
	Edition     = edition.Edition
	Version     = version.Version
	IndexedData = snapshot.IndexedData
	FeatureValue = features.Value
)

// Re-exported edition constants.
const (
	PC      = edition.PC
	Bedrock = edition.Bedrock
)

// Client wires together the data source, version registry, feature engine,
// and snapshot cache. Most callers use the package-level GetData and
// SupportedVersions instead of constructing a Client directly.
type Client struct {
	root     *datasource.Root
	loader   *mcpaths.Loader
	registry *version.Registry
	features *features.Engine
	cache    *snapshot.Cache
}

type config struct {
	cacheDir   string
	httpClient *http.Client
	emitter    *events.Emitter
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*config)

// WithCacheDir overrides the platform cache directory used to store the
// downloaded upstream data tree.
func WithCacheDir(dir string) Option {
	return func(c *config) { c.cacheDir = dir }
}

// WithHTTPClient overrides the HTTP client used for the upstream archive
// fetch.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithEmitter attaches an events.Emitter that receives download/extraction/
// load progress events.
func WithEmitter(e *events.Emitter) Option {
	return func(c *config) { c.emitter = e }
}

// WithLogger overrides the zerolog.Logger used for diagnostic output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New constructs a standalone Client. Prefer GetData/SupportedVersions for
// the common case of one shared, process-wide cache.
func New(opts ...Option) *Client {
	cfg := &config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	var dsOpts []datasource.Option
	if cfg.cacheDir != "" {
		dsOpts = append(dsOpts, datasource.WithCacheDir(cfg.cacheDir))
	}
	if cfg.httpClient != nil {
		dsOpts = append(dsOpts, datasource.WithHTTPClient(cfg.httpClient))
	}
	if cfg.emitter != nil {
		dsOpts = append(dsOpts, datasource.WithEmitter(cfg.emitter))
	}
	dsOpts = append(dsOpts, datasource.WithLogger(cfg.logger))

	root := datasource.New(dsOpts...)
	loader := mcpaths.New(root, mcpaths.WithLogger(cfg.logger))
	registry := version.New(loader, version.WithLogger(cfg.logger))
	engine := features.New(registry, loader, features.WithLogger(cfg.logger))
	cache := snapshot.NewCache(loader, registry, engine, cfg.emitter, snapshot.WithLogger(cfg.logger))

	return &Client{
		root:     root,
		loader:   loader,
		registry: registry,
		features: engine,
		cache:    cache,
	}
}

// GetData resolves versionString and returns the fully indexed snapshot for
// it, fetching the upstream data tree and/or loading the version's data
// files on first request.
func (c *Client) GetData(versionString string) (*IndexedData, error) {
	v, err := c.registry.Resolve(versionString)
	if err != nil {
		return nil, err
	}
	return c.cache.Get(v)
}

// SupportedVersions returns every specific minecraftVersion string known
// for ed, ascending.
func (c *Client) SupportedVersions(ed Edition) ([]string, error) {
	return c.registry.SupportedVersions(ed)
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the process-wide Client, constructing it on first call.
// Options are honored only on the call that performs construction,
// mirroring the single-initialization-with-memoized-result discipline used
// throughout this module's subpackages.
func Default(opts ...Option) *Client {
	defaultOnce.Do(func() { defaultClient = New(opts...) })
	return defaultClient
}

// GetData resolves versionString against the process-wide default Client.
func GetData(versionString string, opts ...Option) (*IndexedData, error) {
	return Default(opts...).GetData(versionString)
}

// SupportedVersions returns every specific minecraftVersion string known
// for ed, against the process-wide default Client.
func SupportedVersions(ed Edition, opts ...Option) ([]string, error) {
	return Default(opts...).SupportedVersions(ed)
}
