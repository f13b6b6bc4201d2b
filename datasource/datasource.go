// Package datasource implements C1: locating or fetching the upstream
// minecraft-data repository and returning a stable local directory that
// holds it.
package datasource

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/blockdata-go/mcdata/events"
	"github.com/blockdata-go/mcdata/mcerr"
)

const (
	repoOwner   = "PrismarineJS"
	repoName    = "minecraft-data"
	repoRef     = "master"
	appIdentity = "mcdata-go"
	appDir      = "minecraft-data"
	sentinel    = "dataPaths.json"

	archivePrefix = repoName + "-" + repoRef + "/data/"

	userAgent     = "mcdata-go/1.0 (+https://github.com/blockdata-go/mcdata)"
	fetchTimeout  = 5 * time.Minute
)

func archiveURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/archive/refs/heads/%s.zip", repoOwner, repoName, repoRef)
}

// Root locates, fetches, and memoizes the upstream data tree.
type Root struct {
	cacheDir   string
	httpClient *http.Client
	emitter    *events.Emitter
	log        zerolog.Logger

	group singleflight.Group

	mu          sync.Mutex
	initialized bool
	dir         string
	err         error
}

// Option configures a Root.
type Option func(*Root)

// WithCacheDir overrides the platform cache directory used to store the
// downloaded data tree. Primarily useful in tests.
func WithCacheDir(dir string) Option {
	return func(r *Root) { r.cacheDir = dir }
}

// WithHTTPClient overrides the HTTP client used to fetch the upstream
// archive. If unset, a client with a fixed fetchTimeout is used.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Root) { r.httpClient = c }
}

// WithEmitter attaches an events.Emitter that receives "downloading",
// "extracting", and "cache_hit" progress events. A nil emitter (the
// default) is a silent no-op.
func WithEmitter(e *events.Emitter) Option {
	return func(r *Root) { r.emitter = e }
}

// WithLogger overrides the zerolog.Logger used for diagnostic output.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Root) { r.log = l }
}

// New constructs a Root. The upstream archive is not touched until Dir is
// first called.
func New(opts ...Option) *Root {
	r := &Root{
		httpClient: &http.Client{Timeout: fetchTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir guarantees the upstream data tree is present locally and returns the
// absolute path to its data/ directory. Concurrent first callers collapse
// into a single download/extraction; later callers return the memoized
// result without touching disk or network again.
func (r *Root) Dir() (string, error) {
	if dir, err, ok := r.fastPath(); ok {
		return dir, err
	}

	v, err, _ := r.group.Do("root", func() (any, error) {
		if dir, err, ok := r.fastPath(); ok {
			return dir, err
		}
		dir, err := r.computeDir()
		r.mu.Lock()
		r.dir, r.err, r.initialized = dir, err, true
		r.mu.Unlock()
		return dir, err
	})
	if err != nil {
		return "", err
	}
	return v.(string), err
}

func (r *Root) fastPath() (string, error, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		return r.dir, r.err, true
	}
	return "", nil, false
}

func (r *Root) computeDir() (string, error) {
	base, err := r.resolveCacheDir()
	if err != nil {
		return "", err
	}
	dataDir := filepath.Join(base, "data")
	sentinelPath := filepath.Join(dataDir, sentinel)

	if _, err := os.Stat(sentinelPath); err == nil {
		r.log.Debug().Str("dir", dataDir).Msg("data tree already present, skipping fetch")
		r.emitter.Emit("cache_hit", dataDir)
		return dataDir, nil
	}

	r.log.Info().Str("url", archiveURL()).Msg("fetching upstream data archive")
	r.emitter.Emit("downloading", archiveURL())

	body, err := r.fetchArchive()
	if err != nil {
		return "", err
	}

	r.log.Info().Str("dir", dataDir).Msg("extracting data archive")
	r.emitter.Emit("extracting", dataDir)

	if err := extractArchive(body, base, r.log); err != nil {
		return "", err
	}

	if _, err := os.Stat(sentinelPath); err != nil {
		return "", &mcerr.DownloadVerificationFailed{Path: sentinelPath}
	}

	return dataDir, nil
}

func (r *Root) resolveCacheDir() (string, error) {
	if r.cacheDir != "" {
		return r.cacheDir, nil
	}
	base, err := xdg.CacheFile(filepath.Join(appIdentity, appDir, "placeholder"))
	if err != nil {
		return "", &mcerr.CacheDirNotFound{}
	}
	return filepath.Dir(base), nil
}

func (r *Root) fetchArchive() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, archiveURL(), nil)
	if err != nil {
		return nil, &mcerr.DownloadError{Message: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &mcerr.DownloadError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &mcerr.DownloadError{Message: fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, archiveURL())}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &mcerr.DownloadError{Message: err.Error()}
	}
	return data, nil
}

// extractArchive purges base's data subtree and re-extracts every entry
// under archivePrefix from the zip body, stripping that prefix: the same
// walk-and-skip-bad-entries idiom as extracting native libraries out of a
// jar, applied here to a data tree instead.
func extractArchive(body []byte, base string, log zerolog.Logger) error {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return &mcerr.ArchiveError{Message: err.Error()}
	}

	dataDir := filepath.Join(base, "data")
	if err := os.RemoveAll(dataDir); err != nil {
		return &mcerr.IoError{Path: dataDir, Cause: err}
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return &mcerr.IoError{Path: dataDir, Cause: err}
	}

	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, archivePrefix) {
			continue
		}
		rel := strings.TrimPrefix(f.Name, archivePrefix)
		if rel == "" {
			continue
		}

		destPath := filepath.Join(dataDir, rel)
		// Reject any entry whose cleaned path escapes dataDir (path
		// traversal via "../" segments in the archive).
		if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(dataDir)+string(os.PathSeparator)) &&
			filepath.Clean(destPath) != filepath.Clean(dataDir) {
			log.Warn().Str("entry", f.Name).Msg("skipping archive entry outside the data directory")
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return &mcerr.IoError{Path: destPath, Cause: err}
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return &mcerr.IoError{Path: destPath, Cause: err}
		}

		rc, err := f.Open()
		if err != nil {
			continue
		}
		out, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			continue
		}
		_, copyErr := io.Copy(out, rc)
		rc.Close()
		out.Close()
		if copyErr != nil {
			continue
		}

		if mode := f.Mode().Perm(); mode != 0 {
			if err := os.Chmod(destPath, mode); err != nil {
				// Permission preservation failures are warnings, never fatal.
				log.Warn().Err(err).Str("path", destPath).Msg("failed to preserve file permissions")
				continue
			}
		}
	}

	return nil
}
