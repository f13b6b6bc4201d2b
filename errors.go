package mcdata

import "github.com/blockdata-go/mcdata/mcerr"

// Re-exported error types, so callers can errors.As against mcdata.* rather
// than reaching into the mcerr subpackage.
type (
	InvalidVersion              = mcerr.InvalidVersion
	VersionNotFound              = mcerr.VersionNotFound
	DataPathNotFound             = mcerr.DataPathNotFound
	DataFileNotFound             = mcerr.DataFileNotFound
	IoError                      = mcerr.IoError
	JsonParseError               = mcerr.JsonParseError
	CacheDirNotFound             = mcerr.CacheDirNotFound
	DownloadError                = mcerr.DownloadError
	ArchiveError                 = mcerr.ArchiveError
	DownloadVerificationFailed   = mcerr.DownloadVerificationFailed
	CachedError                  = mcerr.CachedError
	Internal                     = mcerr.Internal
)
