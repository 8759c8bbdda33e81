// Package application wires one project's versioning core together: the
// lineage store, the snapshot vault, the version controller, and the
// background task runner.
package application

import (
	"fmt"
	"os"
	"path/filepath"

	"scivault/internal/adapters/sqlite"
	"scivault/internal/adapters/vault"
	"scivault/internal/application/tasks"
	"scivault/internal/application/versioning"
	"scivault/internal/config"
	"scivault/internal/ports"
)

// Session holds the live resources for one open project. Construct with
// OpenProject and release with Close; redo state lives in the controller and
// starts empty each session.
type Session struct {
	Root       string
	Store      ports.LineageStore
	Vault      ports.SnapshotVault
	Controller *versioning.Controller
	Runner     *tasks.Runner
}

// OpenProject opens (creating if needed) the project at root: scaffolds the
// directory layout, opens the lineage database, and builds the vault,
// controller, and task runner.
func OpenProject(root string) (*Session, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	for _, d := range []string{config.DataDirName, config.ExportsDirName} {
		if err := os.MkdirAll(filepath.Join(abs, d), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", d, err)
		}
	}

	store, err := sqlite.Open(filepath.Join(abs, config.DBFileName))
	if err != nil {
		return nil, err
	}

	vlt := vault.New(filepath.Join(abs, config.VaultDirName))

	return &Session{
		Root:       abs,
		Store:      store,
		Vault:      vlt,
		Controller: versioning.NewController(store, vlt),
		Runner:     tasks.NewRunner(),
	}, nil
}

// DataDir returns the project's watched inbox directory.
func (s *Session) DataDir() string {
	return filepath.Join(s.Root, config.DataDirName)
}

// Close drains the task runner and closes the store.
func (s *Session) Close() error {
	s.Runner.Close()
	return s.Store.Close()
}
