package ports

// SnapshotVault defines deduplicated, digest-keyed storage of immutable file
// snapshots. Digests are SHA-256 hex strings; writing content that is already
// stored is a no-op.
type SnapshotVault interface {
	// Put snapshots the file at filePath and returns its digest. Returns
	// domain.ErrSourceFileMissing (with an empty digest) when the file does
	// not exist.
	Put(filePath string) (string, error)

	// PutBytes snapshots in-memory content and returns its digest.
	PutBytes(content []byte) (string, error)

	// Restore copies the blob for digest over destPath. Returns an error
	// matching domain.ErrBlobNotFound when no blob exists for the digest.
	Restore(digest, destPath string) error

	// Exists reports whether a blob is stored under the digest.
	Exists(digest string) bool

	// BlobPath returns where the blob for digest lives (whether or not it
	// has been written yet).
	BlobPath(digest string) string
}
