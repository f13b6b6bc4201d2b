// Package mcerr is the closed taxonomy of errors this module surfaces to
// callers. Every failure mode documented in the component design ends up as
// one of these types; application code can type-switch or use errors.As
// against them instead of matching on message text.
package mcerr

import "fmt"

// InvalidVersion means a version string could not be resolved to any known
// Version by the registry.
type InvalidVersion struct {
	VersionString string
}

func (e *InvalidVersion) Error() string {
	return fmt.Sprintf("invalid version: %q", e.VersionString)
}

// VersionNotFound means resolution succeeded in principle but the resulting
// lookup key was absent from the registry.
type VersionNotFound struct {
	MinecraftVersion string
	MajorVersion     string
	Edition          string
}

func (e *VersionNotFound) Error() string {
	return fmt.Sprintf("version not found: mcVersion=%q majorVersion=%q edition=%s",
		e.MinecraftVersion, e.MajorVersion, e.Edition)
}

// DataPathNotFound means dataPaths.json has no entry for the requested key.
type DataPathNotFound struct {
	Edition      string
	MajorVersion string
	DataKey      string
}

func (e *DataPathNotFound) Error() string {
	return fmt.Sprintf("no data path for edition=%s majorVersion=%s dataKey=%s",
		e.Edition, e.MajorVersion, e.DataKey)
}

// DataFileNotFound means a data path resolved to a directory, but no file
// with a matching basename stem (or the directory itself) exists.
type DataFileNotFound struct {
	DataKey string
	Path    string
}

func (e *DataFileNotFound) Error() string {
	return fmt.Sprintf("no data file for key=%s under path=%s", e.DataKey, e.Path)
}

// IoError wraps a filesystem access failure for a specific path.
type IoError struct {
	Path  string
	Cause error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error at %s: %v", e.Path, e.Cause)
}

func (e *IoError) Unwrap() error { return e.Cause }

// JsonParseError wraps a JSON decode failure for a specific path.
type JsonParseError struct {
	Path  string
	Cause error
}

func (e *JsonParseError) Error() string {
	return fmt.Sprintf("json parse error at %s: %v", e.Path, e.Cause)
}

func (e *JsonParseError) Unwrap() error { return e.Cause }

// CacheDirNotFound means the platform cache directory could not be
// determined.
type CacheDirNotFound struct{}

func (e *CacheDirNotFound) Error() string { return "could not determine cache directory" }

// DownloadError means the upstream archive fetch failed (network error,
// non-2xx response, or timeout).
type DownloadError struct {
	Message string
}

func (e *DownloadError) Error() string { return fmt.Sprintf("download failed: %s", e.Message) }

// ArchiveError means the downloaded archive could not be read as a zip, or
// extraction failed for a reason other than per-entry skips.
type ArchiveError struct {
	Message string
}

func (e *ArchiveError) Error() string { return fmt.Sprintf("archive error: %s", e.Message) }

// DownloadVerificationFailed means extraction completed but the sentinel
// file was not found afterward.
type DownloadVerificationFailed struct {
	Path string
}

func (e *DownloadVerificationFailed) Error() string {
	return fmt.Sprintf("download verification failed: sentinel missing at %s", e.Path)
}

// CachedError re-surfaces a previously memoized failure. It is distinct from
// a fresh error of the same underlying kind so callers can tell "this is the
// first time this failed" from "this failed once already and nothing has
// retried it".
type CachedError struct {
	Message string
}

func (e *CachedError) Error() string {
	return fmt.Sprintf("cached failure from a previous attempt: %s", e.Message)
}

// Internal signals an invariant violation: cross-edition comparison, a
// missing dataVersion after synthesis, or equivalent programmer-visible bugs
// rather than environmental failures.
type Internal struct {
	Message string
}

func (e *Internal) Error() string { return fmt.Sprintf("internal error: %s", e.Message) }
