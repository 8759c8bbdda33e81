package application

import (
	"os"
	"path/filepath"
	"testing"

	"scivault/internal/config"
)

func TestOpenProjectScaffoldsLayout(t *testing.T) {
	root := t.TempDir()

	session, err := OpenProject(root)
	if err != nil {
		t.Fatalf("failed to open project: %v", err)
	}
	defer session.Close()

	for _, d := range []string{config.DataDirName, config.ExportsDirName} {
		if info, err := os.Stat(filepath.Join(root, d)); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s to exist", d)
		}
	}
	if _, err := os.Stat(filepath.Join(root, config.DBFileName)); err != nil {
		t.Errorf("expected database file to exist: %v", err)
	}
}

func TestSessionVersioningThroughRunner(t *testing.T) {
	root := t.TempDir()

	session, err := OpenProject(root)
	if err != nil {
		t.Fatalf("failed to open project: %v", err)
	}
	defer session.Close()

	filePath := filepath.Join(session.DataDir(), "run.csv")
	if err := os.WriteFile(filePath, []byte("x,y\n1,2\n"), 0644); err != nil {
		t.Fatalf("failed to write working file: %v", err)
	}

	reg, err := session.Controller.RegisterOrLoad("run", filePath, "{}", nil, "main", "ada")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	// Commit through the background runner, the way a shell would.
	id := session.Runner.Submit("commit", func() (interface{}, error) {
		return session.Controller.CommitEdit(reg.NodeID, filePath, []byte("x,y\n1,2\n3,4\n"))
	})

	res := <-session.Runner.Results()
	if res.ID != id || res.Err != nil {
		t.Fatalf("unexpected task result: %+v", res)
	}

	history, err := session.Store.ReadHistory(reg.NodeID)
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected one history entry, got %d", len(history))
	}

	got, _ := os.ReadFile(filePath)
	if string(got) != "x,y\n1,2\n3,4\n" {
		t.Errorf("working file not updated: %q", got)
	}
}

func TestScanInbox(t *testing.T) {
	session, err := OpenProject(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open project: %v", err)
	}
	defer session.Close()

	tracked := filepath.Join(session.DataDir(), "tracked.csv")
	untracked := filepath.Join(session.DataDir(), "untracked.csv")
	for _, p := range []string{tracked, untracked} {
		if err := os.WriteFile(p, []byte("x,y\n"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	// Non-CSV files are not inbox material.
	if err := os.WriteFile(filepath.Join(session.DataDir(), "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	reg, err := session.Controller.RegisterOrLoad("tracked", tracked, "{}", nil, "main", "")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	entries, err := session.ScanInbox()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 inbox entries, got %d", len(entries))
	}

	byPath := make(map[string]InboxEntry)
	for _, e := range entries {
		byPath[e.Path] = e
	}
	if e := byPath[tracked]; !e.Tracked() || e.NodeID != reg.NodeID {
		t.Errorf("expected tracked entry for node %d, got %+v", reg.NodeID, e)
	}
	if e := byPath[untracked]; e.Tracked() {
		t.Errorf("expected untracked entry, got %+v", e)
	}
}

func TestProjectsDoNotShareVaults(t *testing.T) {
	a, err := OpenProject(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open project a: %v", err)
	}
	defer a.Close()

	b, err := OpenProject(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open project b: %v", err)
	}
	defer b.Close()

	digest, err := a.Vault.PutBytes([]byte("only in a\n"))
	if err != nil {
		t.Fatalf("failed to store blob: %v", err)
	}

	if b.Vault.Exists(digest) {
		t.Error("vault contents leaked across projects")
	}
	if !a.Vault.Exists(digest) {
		t.Error("blob missing from its own project vault")
	}
}
