package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the versioning taxonomy. "Expected absence" lookups
// (an unknown node id) return nil values instead of these; the sentinels mark
// operations that could not proceed.
var (
	// ErrSourceFileMissing means a snapshot was requested for a working file
	// that no longer exists on disk.
	ErrSourceFileMissing = errors.New("source file missing")

	// ErrBlobNotFound means a digest has no corresponding vault entry.
	ErrBlobNotFound = errors.New("version missing in vault")

	// ErrNothingToUndo is the quiet no-op signal for undo on empty history.
	ErrNothingToUndo = errors.New("no history to undo")

	// ErrNothingToRedo is the quiet no-op signal for redo on an empty stack.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrStoreUnavailable means the backing database could not be opened or
	// was closed mid-session. Fatal until the project is reloaded.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError represents a rejected argument with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BlobMissingError identifies which digest had no vault entry.
type BlobMissingError struct {
	Digest string
}

func (e *BlobMissingError) Error() string {
	return fmt.Sprintf("version missing in vault: %s", e.Digest)
}

func (e *BlobMissingError) Is(target error) bool {
	return target == ErrBlobNotFound
}
