// Package features implements C4: evaluating a named feature against a
// Version through the version-range rules in common/features.json.
package features

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/blockdata-go/mcdata/edition"
	"github.com/blockdata-go/mcdata/mcerr"
	"github.com/blockdata-go/mcdata/mcpaths"
	"github.com/blockdata-go/mcdata/version"
)

type rawFeatureValue struct {
	Value    any      `json:"value"`
	Version  string   `json:"version"`
	Versions []string `json:"versions"`
}

type rawFeature struct {
	Name     string            `json:"name"`
	Values   []rawFeatureValue `json:"values"`
	Version  string            `json:"version"`
	Versions []string          `json:"versions"`
}

type listEntry struct {
	features []rawFeature
	err      error
}

type resolvedKey struct {
	ed edition.Edition
	s  string
}

// Engine evaluates features against Versions for one Registry/Loader pair.
type Engine struct {
	registry *version.Registry
	loader   *mcpaths.Loader
	log      zerolog.Logger

	group singleflight.Group

	mu   sync.Mutex
	list map[edition.Edition]*listEntry

	resolvedMu sync.RWMutex
	resolved   map[resolvedKey]version.Version
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger overrides the zerolog.Logger used for diagnostic output.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns an Engine backed by registry and loader.
func New(registry *version.Registry, loader *mcpaths.Loader, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		loader:   loader,
		log:      zerolog.Nop(),
		list:     make(map[edition.Edition]*listEntry),
		resolved: make(map[resolvedKey]version.Version),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Supports evaluates featureName against v. An unknown feature name, or a
// feature whose ranges do not cover v, evaluates to the boolean false.
func (e *Engine) Supports(v version.Version, featureName string) (Value, error) {
	list, err := e.features(v.Edition)
	if err != nil {
		return Value{}, err
	}

	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Name != featureName {
			continue
		}
		return e.evaluate(v, list[i])
	}
	return boolValue(false), nil
}

func (e *Engine) evaluate(v version.Version, f rawFeature) (Value, error) {
	if len(f.Values) > 0 {
		for j := len(f.Values) - 1; j >= 0; j-- {
			entry := f.Values[j]
			min, max, ok := endpoints(entry.Version, entry.Versions)
			if !ok {
				continue
			}
			in, err := e.inRange(v, min, max)
			if err != nil {
				return Value{}, err
			}
			if in {
				return Value{raw: entry.Value}, nil
			}
		}
		return boolValue(false), nil
	}

	if f.Version != "" {
		in, err := e.inRange(v, f.Version, f.Version)
		if err != nil {
			return Value{}, err
		}
		return boolValue(in), nil
	}

	if min, max, ok := endpoints("", f.Versions); ok {
		in, err := e.inRange(v, min, max)
		if err != nil {
			return Value{}, err
		}
		return boolValue(in), nil
	}

	return boolValue(false), nil
}

func endpoints(version string, versions []string) (min, max string, ok bool) {
	if version != "" {
		return version, version, true
	}
	if len(versions) == 2 {
		return versions[0], versions[1], true
	}
	return "", "", false
}

func (e *Engine) inRange(v version.Version, minEndpoint, maxEndpoint string) (bool, error) {
	minV, err := e.resolveEndpoint(v.Edition, minEndpoint, false)
	if err != nil {
		return false, err
	}
	maxV, err := e.resolveEndpoint(v.Edition, maxEndpoint, true)
	if err != nil {
		return false, err
	}
	cmpMin, err := v.Compare(minV)
	if err != nil {
		return false, err
	}
	cmpMax, err := v.Compare(maxV)
	if err != nil {
		return false, err
	}
	return cmpMin >= 0 && cmpMax <= 0, nil
}

// resolveEndpoint resolves a range endpoint string to a Version. "latest"
// always means the Version with the maximum dataVersion overall. An
// "<X>_major" suffix means the oldest Version in major series X when used
// as a min endpoint, and the newest when used as a max endpoint. Anything
// else is a plain version string resolved (and cached) through the
// registry.
func (e *Engine) resolveEndpoint(ed edition.Edition, s string, isMax bool) (version.Version, error) {
	if s == "latest" {
		data, err := e.registry.Data(ed)
		if err != nil {
			return version.Version{}, err
		}
		return data.Newest, nil
	}

	if major, ok := strings.CutSuffix(s, "_major"); ok {
		data, err := e.registry.Data(ed)
		if err != nil {
			return version.Version{}, err
		}
		list := data.ByMajorVersion[major]
		if len(list) == 0 {
			return version.Version{}, &mcerr.InvalidVersion{VersionString: s}
		}
		if isMax {
			return list[0], nil // sorted dataVersion descending: newest first
		}
		return list[len(list)-1], nil // oldest in the series
	}

	return e.resolveCached(ed, s)
}

func (e *Engine) resolveCached(ed edition.Edition, s string) (version.Version, error) {
	key := resolvedKey{ed: ed, s: s}

	e.resolvedMu.RLock()
	if v, ok := e.resolved[key]; ok {
		e.resolvedMu.RUnlock()
		return v, nil
	}
	e.resolvedMu.RUnlock()

	prefixed := s
	if ed == edition.Bedrock && !strings.HasPrefix(s, "bedrock_") && !strings.HasPrefix(s, "pc_") {
		prefixed = "bedrock_" + s
	}

	v, err := e.registry.Resolve(prefixed)
	if err != nil {
		return version.Version{}, err
	}
	if v.Edition != ed {
		return version.Version{}, &mcerr.Internal{Message: "resolved endpoint edition does not match requested edition"}
	}

	e.resolvedMu.Lock()
	e.resolved[key] = v
	e.resolvedMu.Unlock()
	return v, nil
}

// features loads and memoizes common/features.json for ed.
func (e *Engine) features(ed edition.Edition) ([]rawFeature, error) {
	if f, err, ok := e.fastPath(ed); ok {
		return f, err
	}

	key := ed.PathPrefix()
	v, err, _ := e.group.Do(key, func() (any, error) {
		if f, err, ok := e.fastPath(ed); ok {
			return f, err
		}
		f, err := e.loadFeatures(ed)
		e.mu.Lock()
		e.list[ed] = &listEntry{features: f, err: err}
		e.mu.Unlock()
		return f, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]rawFeature), nil
}

func (e *Engine) fastPath(ed edition.Edition) ([]rawFeature, error, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.list[ed]
	if !ok {
		return nil, nil, false
	}
	if entry.err != nil {
		return nil, &mcerr.CachedError{Message: entry.err.Error()}, true
	}
	return entry.features, nil, true
}

func (e *Engine) loadFeatures(ed edition.Edition) ([]rawFeature, error) {
	e.log.Debug().Str("edition", ed.PathPrefix()).Msg("loading features.json")
	var raw []rawFeature
	if err := e.loader.ResolveAndLoad(ed, "common", "features", &raw); err != nil {
		e.log.Warn().Err(err).Str("edition", ed.PathPrefix()).Msg("failed to load features.json")
		return nil, err
	}
	return raw, nil
}
