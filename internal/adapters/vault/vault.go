package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"scivault/internal/domain"
	"scivault/internal/ports"
)

// BlobExt is the extension every vault blob is stored under. The vault treats
// content as opaque bytes; the extension only keeps blobs openable by the
// same tools as the working files they snapshot.
const BlobExt = ".csv"

// Store implements ports.SnapshotVault on a plain directory of digest-named
// files. The directory is created lazily on first write.
type Store struct {
	dir string
}

// Ensure Store implements SnapshotVault
var _ ports.SnapshotVault = (*Store)(nil)

// New creates a vault rooted at dir. Nothing touches the filesystem until the
// first Put.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the vault directory.
func (s *Store) Dir() string {
	return s.dir
}

// HashBytes returns the SHA-256 hex digest of content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// HashFile streams the file at path through SHA-256. Identical byte content
// yields an identical digest regardless of filesystem metadata.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, domain.ErrSourceFileMissing)
		}
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// BlobPath returns where the blob for digest lives.
func (s *Store) BlobPath(digest string) string {
	return filepath.Join(s.dir, digest+BlobExt)
}

// Exists reports whether a blob is stored under the digest.
func (s *Store) Exists(digest string) bool {
	_, err := os.Stat(s.BlobPath(digest))
	return err == nil
}

// Put snapshots the file at filePath and returns its digest. If a blob with
// that digest already exists no copy is made; content addressing guarantees
// the stored bytes are identical.
func (s *Store) Put(filePath string) (string, error) {
	digest, err := HashFile(filePath)
	if err != nil {
		return "", err
	}

	if err := s.ensure(); err != nil {
		return "", err
	}

	dest := s.BlobPath(digest)
	if _, err := os.Stat(dest); err == nil {
		return digest, nil
	}

	if err := copyFile(filePath, dest); err != nil {
		return "", fmt.Errorf("failed to store snapshot: %w", err)
	}
	return digest, nil
}

// PutBytes snapshots in-memory content and returns its digest.
func (s *Store) PutBytes(content []byte) (string, error) {
	digest := HashBytes(content)

	if err := s.ensure(); err != nil {
		return "", err
	}

	dest := s.BlobPath(digest)
	if _, err := os.Stat(dest); err == nil {
		return digest, nil
	}

	if err := os.WriteFile(dest, content, 0644); err != nil {
		return "", fmt.Errorf("failed to store snapshot: %w", err)
	}
	return digest, nil
}

// Restore copies the stored blob's bytes over destPath.
func (s *Store) Restore(digest, destPath string) error {
	src := s.BlobPath(digest)
	if _, err := os.Stat(src); err != nil {
		return &domain.BlobMissingError{Digest: digest}
	}

	if err := copyFile(src, destPath); err != nil {
		return fmt.Errorf("failed to restore %s: %w", digest, err)
	}
	return nil
}

// Len returns how many blobs the vault holds. A vault that was never written
// to counts as empty.
func (s *Store) Len() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == BlobExt {
			count++
		}
	}
	return count, nil
}

// ensure creates the vault directory if needed.
func (s *Store) ensure() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	return nil
}

// copyFile copies bytes from src to dst, overwriting dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
