// Package mcpaths implements C2: resolving (edition, majorVersion, dataKey)
// triples to on-disk file paths via dataPaths.json, and loading JSON files
// into caller-supplied shapes.
package mcpaths

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/blockdata-go/mcdata/datasource"
	"github.com/blockdata-go/mcdata/edition"
	"github.com/blockdata-go/mcdata/mcerr"
)

// table is the parsed shape of dataPaths.json: edition -> majorVersion ->
// dataKey -> relative directory (relative to the data root).
type table map[string]map[string]map[string]string

// Loader resolves data paths and loads JSON files for one Root.
type Loader struct {
	root *datasource.Root
	log  zerolog.Logger

	group singleflight.Group

	mu      sync.Mutex
	loaded  bool
	tbl     table
	loadErr error
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger overrides the zerolog.Logger used for diagnostic output.
func WithLogger(l zerolog.Logger) Option {
	return func(loader *Loader) { loader.log = l }
}

// New returns a Loader backed by root.
func New(root *datasource.Root, opts ...Option) *Loader {
	l := &Loader{root: root, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DataRoot exposes the underlying data root directory, for the one caller
// (the indexed-data loader's legacy.json lookup) that needs a path outside
// the dataPaths.json-mediated convention.
func (l *Loader) DataRoot() (string, error) {
	return l.root.Dir()
}

// Resolve returns the absolute path to the data file identified by
// (ed, majorVersion, dataKey).
func (l *Loader) Resolve(ed edition.Edition, majorVersion, dataKey string) (string, error) {
	t, err := l.table()
	if err != nil {
		return "", err
	}

	byMajor, ok := t[ed.PathPrefix()]
	if !ok {
		return "", &mcerr.DataPathNotFound{Edition: ed.PathPrefix(), MajorVersion: majorVersion, DataKey: dataKey}
	}
	byKey, ok := byMajor[majorVersion]
	if !ok {
		return "", &mcerr.DataPathNotFound{Edition: ed.PathPrefix(), MajorVersion: majorVersion, DataKey: dataKey}
	}
	suffix, ok := byKey[dataKey]
	if !ok {
		return "", &mcerr.DataPathNotFound{Edition: ed.PathPrefix(), MajorVersion: majorVersion, DataKey: dataKey}
	}

	root, err := l.root.Dir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, suffix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &mcerr.DataFileNotFound{DataKey: dataKey, Path: dir}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == dataKey {
			return filepath.Join(dir, name), nil
		}
	}
	return "", &mcerr.DataFileNotFound{DataKey: dataKey, Path: dir}
}

// LoadInto reads path and unmarshals it into v.
func LoadInto(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &mcerr.IoError{Path: path, Cause: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &mcerr.JsonParseError{Path: path, Cause: err}
	}
	return nil
}

// ResolveAndLoad is a convenience combining Resolve and LoadInto.
func (l *Loader) ResolveAndLoad(ed edition.Edition, majorVersion, dataKey string, v any) error {
	path, err := l.Resolve(ed, majorVersion, dataKey)
	if err != nil {
		return err
	}
	return LoadInto(path, v)
}

// table loads and memoizes dataPaths.json. A failed load is remembered: the
// first failure is surfaced as-is, every later call observing it gets a
// CachedError instead, so callers can tell a fresh failure from a
// previously-memoized one.
func (l *Loader) table() (table, error) {
	if t, err, ok := l.fastPath(); ok {
		return t, err
	}

	v, err, _ := l.group.Do("dataPaths", func() (any, error) {
		if t, err, ok := l.fastPath(); ok {
			return t, err
		}
		t, err := l.loadTable()
		l.mu.Lock()
		l.tbl, l.loadErr, l.loaded = t, err, true
		l.mu.Unlock()
		return t, err
	})
	if err != nil {
		return nil, err
	}
	return v.(table), nil
}

func (l *Loader) fastPath() (table, error, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return nil, nil, false
	}
	if l.loadErr != nil {
		return nil, &mcerr.CachedError{Message: l.loadErr.Error()}, true
	}
	return l.tbl, nil, true
}

func (l *Loader) loadTable() (table, error) {
	root, err := l.root.Dir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(root, "dataPaths.json")
	l.log.Debug().Str("path", path).Msg("loading dataPaths.json")

	var t table
	if err := LoadInto(path, &t); err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("failed to load dataPaths.json")
		return nil, err
	}
	return t, nil
}
