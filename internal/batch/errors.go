package batch

import (
	"errors"
	"fmt"

	"github.com/vk/slp2graph/internal/datamap"
)

// ArchiveError reports an archive that could not be opened or unpacked.
// The whole archive is skipped.
type ArchiveError struct {
	Archive string
	Err     error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Archive, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// DecodeError reports a replay the decoder rejected.
type DecodeError struct {
	Archive string
	Entry   string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s in %s: %v", e.Entry, e.Archive, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DuplicateError reports a replay whose content was already converted
// earlier in the run.
type DuplicateError struct {
	Archive string
	Entry   string
	// Digest is the hex SHA-256 of the replay file.
	Digest string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s in %s duplicates a replay converted earlier (sha256 %s)", e.Entry, e.Archive, e.Digest)
}

// WriteError reports a failure to persist a built game. It ends the run.
type WriteError struct {
	Game int
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing game %d: %v", e.Game, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Reason classifies a skip for reports: "archive", "decode", "duplicate",
// "extraction" or "other".
func Reason(err error) string {
	var (
		archiveErr    *ArchiveError
		decodeErr     *DecodeError
		duplicateErr  *DuplicateError
		extractionErr *datamap.ExtractionFieldError
	)
	switch {
	case errors.As(err, &archiveErr):
		return "archive"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &duplicateErr):
		return "duplicate"
	case errors.As(err, &extractionErr):
		return "extraction"
	}
	return "other"
}
