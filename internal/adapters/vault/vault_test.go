package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scivault/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), ".sci_vault"))
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestHashBytesDeterministic(t *testing.T) {
	content := []byte("x,y\n1,2\n")

	first := HashBytes(content)
	second := HashBytes(content)

	if first != second {
		t.Errorf("digest not stable: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
	if other := HashBytes([]byte("x,y\n1,3\n")); other == first {
		t.Error("different content produced the same digest")
	}
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	content := []byte("x,y\n1,2\n3,4\n")
	path := writeFile(t, t.TempDir(), "run.csv", content)

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := HashBytes(content); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "gone.csv"))
	if !errors.Is(err, domain.ErrSourceFileMissing) {
		t.Errorf("expected ErrSourceFileMissing, got %v", err)
	}
}

func TestPutWriteOnce(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	content := []byte("x,y\n1,2\n")
	a := writeFile(t, dir, "a.csv", content)
	b := writeFile(t, dir, "b.csv", content)

	first, err := store.Put(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Put(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("same content, different digests: %s vs %s", first, second)
	}
	if n, _ := store.Len(); n != 1 {
		t.Errorf("expected 1 blob, got %d", n)
	}

	// Different content gets its own blob.
	c := writeFile(t, dir, "c.csv", []byte("x,y\n9,9\n"))
	third, err := store.Put(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == first {
		t.Error("different content reused a digest")
	}
	if n, _ := store.Len(); n != 2 {
		t.Errorf("expected 2 blobs, got %d", n)
	}
}

func TestPutMissingSource(t *testing.T) {
	store := newTestStore(t)

	digest, err := store.Put(filepath.Join(t.TempDir(), "gone.csv"))
	if !errors.Is(err, domain.ErrSourceFileMissing) {
		t.Errorf("expected ErrSourceFileMissing, got %v", err)
	}
	if digest != "" {
		t.Errorf("expected empty digest, got %q", digest)
	}
	if n, _ := store.Len(); n != 0 {
		t.Errorf("vault mutated on failed snapshot: %d blobs", n)
	}
}

func TestPutBytes(t *testing.T) {
	store := newTestStore(t)
	content := []byte("x,y\n1,2\n")

	digest, err := store.PutBytes(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := HashBytes(content); digest != want {
		t.Errorf("expected %s, got %s", want, digest)
	}
	if !store.Exists(digest) {
		t.Error("blob not stored")
	}

	// Second write of identical content is a no-op.
	if _, err := store.PutBytes(content); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := store.Len(); n != 1 {
		t.Errorf("expected 1 blob, got %d", n)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	content := []byte("x,y\n1,2\n3,4\n")

	digest, err := store.PutBytes(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "restored.csv")
	if err := store.Restore(digest, dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("restored content differs: %q", got)
	}
}

func TestRestoreOverwritesDest(t *testing.T) {
	store := newTestStore(t)

	digest, err := store.PutBytes([]byte("old\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dest := writeFile(t, t.TempDir(), "work.csv", []byte("current\n"))

	if err := store.Restore(digest, dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "old\n" {
		t.Errorf("expected overwrite with blob content, got %q", got)
	}
}

func TestRestoreMissingBlob(t *testing.T) {
	store := newTestStore(t)
	missing := HashBytes([]byte("never stored"))

	err := store.Restore(missing, filepath.Join(t.TempDir(), "out.csv"))
	if !errors.Is(err, domain.ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound, got %v", err)
	}

	var blobErr *domain.BlobMissingError
	if !errors.As(err, &blobErr) {
		t.Fatalf("expected BlobMissingError, got %T", err)
	}
	if blobErr.Digest != missing {
		t.Errorf("expected digest %s in error, got %s", missing, blobErr.Digest)
	}
}
