// Package version implements C3: loading common/protocolVersions.json,
// building the three version indexes, and resolving loose version strings
// to a canonical Version.
package version

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/blockdata-go/mcdata/edition"
	"github.com/blockdata-go/mcdata/mcerr"
	"github.com/blockdata-go/mcdata/mcpaths"
)

// Version is the canonical, immutable record this module resolves loose
// version strings to.
type Version struct {
	MinecraftVersion string
	MajorVersion     string
	ProtocolVersion  int
	DataVersion      int
	Edition          edition.Edition
	ReleaseType      string
	// UsesNetty is carried for fidelity with the upstream data but is not
	// consulted anywhere in this module.
	UsesNetty bool
}

// Compare orders two Versions by DataVersion. It errors if the two Versions
// belong to different editions: cross-edition comparisons are a logic
// error, never a silently-equal result.
func (v Version) Compare(other Version) (int, error) {
	if v.Edition != other.Edition {
		return 0, &mcerr.Internal{Message: fmt.Sprintf(
			"cannot compare versions across editions: %s vs %s", v.Edition, other.Edition)}
	}
	switch {
	case v.DataVersion < other.DataVersion:
		return -1, nil
	case v.DataVersion > other.DataVersion:
		return 1, nil
	default:
		return 0, nil
	}
}

// IsOlderThan reports whether v sorts strictly before other.
func (v Version) IsOlderThan(other Version) (bool, error) {
	c, err := v.Compare(other)
	return c < 0, err
}

// IsNewerOrEqualTo reports whether v sorts at or after other.
func (v Version) IsNewerOrEqualTo(other Version) (bool, error) {
	c, err := v.Compare(other)
	return c >= 0, err
}

type rawProtocolVersion struct {
	MinecraftVersion string `json:"minecraftVersion"`
	MajorVersion     string `json:"majorVersion"`
	Version          int    `json:"version"`
	DataVersion      *int   `json:"dataVersion"`
	ReleaseType      string `json:"releaseType"`
	UsesNetty        bool   `json:"usesNetty"`
}

// Data is the fully-built per-edition registry: three indexes plus the
// overall-newest Version (used as the "latest" range endpoint by the
// feature engine).
type Data struct {
	Edition           edition.Edition
	ByMinecraftVersion map[string]Version
	ByMajorVersion     map[string][]Version
	ByProtocolVersion  map[int][]Version
	Newest             Version
}

// Registry loads and memoizes per-edition version Data, and resolves loose
// version strings against it.
type Registry struct {
	loader *mcpaths.Loader
	log    zerolog.Logger

	group singleflight.Group

	mu      sync.Mutex
	entries map[edition.Edition]*registryEntry
}

type registryEntry struct {
	data *Data
	err  error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger overrides the zerolog.Logger used for diagnostic output.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// New returns a Registry backed by loader.
func New(loader *mcpaths.Loader, opts ...Option) *Registry {
	r := &Registry{
		loader:  loader,
		log:     zerolog.Nop(),
		entries: make(map[edition.Edition]*registryEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Data returns the fully-built registry Data for ed, loading and indexing
// common/protocolVersions.json on first use. A load failure is memoized: a
// second observer of the same failure gets a CachedError.
func (r *Registry) Data(ed edition.Edition) (*Data, error) {
	if d, err, ok := r.fastPath(ed); ok {
		return d, err
	}

	key := ed.PathPrefix()
	v, err, _ := r.group.Do(key, func() (any, error) {
		if d, err, ok := r.fastPath(ed); ok {
			return d, err
		}
		d, err := r.loadData(ed)
		r.mu.Lock()
		r.entries[ed] = &registryEntry{data: d, err: err}
		r.mu.Unlock()
		return d, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*Data), nil
}

func (r *Registry) fastPath(ed edition.Edition) (*Data, error, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[ed]
	if !ok {
		return nil, nil, false
	}
	if e.err != nil {
		return nil, &mcerr.CachedError{Message: e.err.Error()}, true
	}
	return e.data, nil, true
}

func (r *Registry) loadData(ed edition.Edition) (*Data, error) {
	r.log.Info().Str("edition", ed.PathPrefix()).Msg("loading protocol versions")
	var raw []rawProtocolVersion
	if err := r.loader.ResolveAndLoad(ed, "common", "protocolVersions", &raw); err != nil {
		r.log.Warn().Err(err).Str("edition", ed.PathPrefix()).Msg("failed to load protocol versions")
		return nil, err
	}

	sorted := make([]rawProtocolVersion, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Version > sorted[j].Version })

	for i := range sorted {
		if sorted[i].DataVersion == nil {
			synthesized := -i
			r.log.Debug().Str("minecraftVersion", sorted[i].MinecraftVersion).Int("synthesized", synthesized).
				Msg("synthesizing missing dataVersion")
			sorted[i].DataVersion = &synthesized
		}
	}

	data := &Data{
		Edition:            ed,
		ByMinecraftVersion: make(map[string]Version),
		ByMajorVersion:     make(map[string][]Version),
		ByProtocolVersion:  make(map[int][]Version),
	}

	var newest *Version
	for _, raw := range sorted {
		if raw.DataVersion == nil {
			return nil, &mcerr.Internal{Message: "entry missing dataVersion after synthesis: " + raw.MinecraftVersion}
		}
		releaseType := raw.ReleaseType
		if releaseType == "" {
			releaseType = "release"
		}
		v := Version{
			MinecraftVersion: raw.MinecraftVersion,
			MajorVersion:     raw.MajorVersion,
			ProtocolVersion:  raw.Version,
			DataVersion:      *raw.DataVersion,
			Edition:          ed,
			ReleaseType:      releaseType,
			UsesNetty:        raw.UsesNetty,
		}

		data.ByMinecraftVersion[v.MinecraftVersion] = v
		upgradeMajorEntry(data.ByMinecraftVersion, v)

		data.ByMajorVersion[v.MajorVersion] = append(data.ByMajorVersion[v.MajorVersion], v)
		data.ByProtocolVersion[v.ProtocolVersion] = append(data.ByProtocolVersion[v.ProtocolVersion], v)

		if newest == nil || v.DataVersion > newest.DataVersion {
			vv := v
			newest = &vv
		}
	}

	for k := range data.ByMajorVersion {
		sortByDataVersionDesc(data.ByMajorVersion[k])
	}
	for k := range data.ByProtocolVersion {
		sortByDataVersionDesc(data.ByProtocolVersion[k])
	}

	if newest == nil {
		return nil, &mcerr.Internal{Message: "no protocol version entries for edition " + ed.String()}
	}
	data.Newest = *newest

	return data, nil
}

// upgradeMajorEntry maintains the majorVersion -> Version shortcut: the
// stored entry is replaced when the candidate has a strictly higher
// dataVersion, or ties on dataVersion while being a release where the
// existing entry is not. This picks the latest release of the series when
// that release is also the series' newest entry; a non-release with a higher
// dataVersion than every release wins.
func upgradeMajorEntry(byMC map[string]Version, candidate Version) {
	existing, ok := byMC[candidate.MajorVersion]
	if !ok {
		byMC[candidate.MajorVersion] = candidate
		return
	}
	if candidate.DataVersion > existing.DataVersion {
		byMC[candidate.MajorVersion] = candidate
		return
	}
	if candidate.DataVersion == existing.DataVersion &&
		candidate.ReleaseType == "release" && existing.ReleaseType != "release" {
		byMC[candidate.MajorVersion] = candidate
	}
}

func sortByDataVersionDesc(vs []Version) {
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].DataVersion > vs[j].DataVersion })
}

// Resolve maps a loose version string to a canonical Version, per the
// five-step algorithm: strip an edition prefix, try an exact/major lookup,
// try a protocol number, try a bare major version, else fail.
func (r *Registry) Resolve(versionString string) (Version, error) {
	ed := edition.PC
	versionPart := versionString
	switch {
	case strings.HasPrefix(versionString, "pc_"):
		versionPart = strings.TrimPrefix(versionString, "pc_")
	case strings.HasPrefix(versionString, "bedrock_"):
		ed = edition.Bedrock
		versionPart = strings.TrimPrefix(versionString, "bedrock_")
	}

	data, err := r.Data(ed)
	if err != nil {
		return Version{}, err
	}

	if v, ok := data.ByMinecraftVersion[versionPart]; ok &&
		(v.MinecraftVersion == versionPart || v.MajorVersion == versionPart) {
		return v, nil
	}

	if protocol, convErr := strconv.Atoi(versionPart); convErr == nil {
		list := data.ByProtocolVersion[protocol]
		if len(list) == 0 {
			return Version{}, &mcerr.InvalidVersion{VersionString: versionString}
		}
		for _, v := range list {
			if v.ReleaseType == "release" {
				return v, nil
			}
		}
		return list[0], nil
	}

	if list := data.ByMajorVersion[versionPart]; len(list) > 0 {
		return list[0], nil
	}

	return Version{}, &mcerr.InvalidVersion{VersionString: versionString}
}

// SupportedVersions returns every specific minecraftVersion string for ed
// (major-only keys excluded), sorted ascending by a component-wise numeric
// comparison of dot-separated parts.
func (r *Registry) SupportedVersions(ed edition.Edition) ([]string, error) {
	data, err := r.Data(ed)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(data.ByMinecraftVersion))
	for k, v := range data.ByMinecraftVersion {
		// ByMinecraftVersion also holds majorVersion -> Version shortcuts
		// (see upgradeMajorEntry); only keys that are themselves a real
		// minecraftVersion row belong in the supported-versions list.
		if k == v.MinecraftVersion {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessVersionString(out[i], out[j]) })
	return out, nil
}

func lessVersionString(a, b string) bool {
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")
	for i := 0; i < len(ap) || i < len(bp); i++ {
		var av, bv int
		if i < len(ap) {
			av, _ = strconv.Atoi(ap[i])
		}
		if i < len(bp) {
			bv, _ = strconv.Atoi(bp[i])
		}
		if av != bv {
			return av < bv
		}
	}
	return false
}
