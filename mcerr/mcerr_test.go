package mcerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&InvalidVersion{VersionString: "nope"}).Error(), "nope")
	assert.Contains(t, (&VersionNotFound{MinecraftVersion: "1.2.3"}).Error(), "1.2.3")
	assert.Contains(t, (&DataPathNotFound{DataKey: "blocks"}).Error(), "blocks")
	assert.Contains(t, (&DataFileNotFound{DataKey: "items"}).Error(), "items")
	assert.Contains(t, (&CacheDirNotFound{}).Error(), "cache directory")
	assert.Contains(t, (&DownloadError{Message: "timeout"}).Error(), "timeout")
	assert.Contains(t, (&ArchiveError{Message: "bad zip"}).Error(), "bad zip")
	assert.Contains(t, (&DownloadVerificationFailed{Path: "/x/dataPaths.json"}).Error(), "/x/dataPaths.json")
	assert.Contains(t, (&CachedError{Message: "earlier failure"}).Error(), "earlier failure")
	assert.Contains(t, (&Internal{Message: "edition mismatch"}).Error(), "edition mismatch")
}

func TestWrappingErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk full")

	ioErr := &IoError{Path: "/tmp/x", Cause: cause}
	assert.ErrorIs(t, ioErr, cause)

	jsonErr := &JsonParseError{Path: "/tmp/x.json", Cause: cause}
	assert.ErrorIs(t, jsonErr, cause)

	wrapped := fmt.Errorf("loading: %w", ioErr)
	var target *IoError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "/tmp/x", target.Path)
}
