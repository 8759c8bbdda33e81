// Package versioning implements the save / undo / redo protocol that ties the
// snapshot vault and the lineage store together. The per-node state it
// manages is the pair (history, redo stack): history is persisted through the
// lineage store, the redo stack lives only in this controller and does not
// survive a restart. That loss is an accepted product limitation.
package versioning

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"scivault/internal/domain"
	"scivault/internal/ports"
)

// Controller orchestrates versioning operations against one project's store
// and vault. Operations are expected to run on a single background worker,
// so the internal mutex only guards the redo map against shell goroutines
// peeking at it (RedoDepth) while an operation runs.
type Controller struct {
	store ports.LineageStore
	vault ports.SnapshotVault

	mu   sync.Mutex
	redo map[int64][]string
}

// NewController creates a controller with a fresh, empty redo state.
func NewController(store ports.LineageStore, vault ports.SnapshotVault) *Controller {
	return &Controller{
		store: store,
		vault: vault,
		redo:  make(map[int64][]string),
	}
}

// RegisterResult contains the result of registering a working file.
type RegisterResult struct {
	NodeID   int64
	Existing bool
	Message  string
}

// CommitResult contains the result of a committed edit.
type CommitResult struct {
	NodeID      int64
	PreImage    string // digest of the content replaced by this commit
	HistoryGrew bool   // false when the pre-image equalled the newest entry
	Message     string
}

// UndoResult contains the result of an undo.
type UndoResult struct {
	NodeID         int64
	RestoredDigest string
	RedoDigest     string // digest set aside for redo; empty if the working file could not be captured
	Message        string
}

// RedoResult contains the result of a redo.
type RedoResult struct {
	NodeID         int64
	RestoredDigest string
	Message        string
}

// RegisterOrLoad registers a working file as a new node, or returns the
// existing node's id when the path is already tracked.
func (c *Controller) RegisterOrLoad(name, filePath, analysisJSON string, parentID *int64, branch, researcher string) (*RegisterResult, error) {
	if filePath == "" {
		return nil, &domain.ValidationError{Field: "filePath", Message: "file path is required"}
	}
	if name == "" {
		name = filepath.Base(filePath)
	}
	if analysisJSON == "" {
		analysisJSON = "{}"
	}

	existing, err := c.store.GetNodeByPath(filePath)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &RegisterResult{
			NodeID:   existing.ID,
			Existing: true,
			Message:  fmt.Sprintf("LOADED NODE %d", existing.ID),
		}, nil
	}

	id, err := c.store.RegisterNode(name, filePath, analysisJSON, parentID, branch, researcher)
	if err != nil {
		return nil, err
	}
	if researcher == "" {
		researcher = domain.DefaultResearcher
	}
	return &RegisterResult{
		NodeID:  id,
		Message: fmt.Sprintf("COMMITTED BY %s", researcher),
	}, nil
}

// LoadNode returns the full record for a node. Returns (nil, nil) when the
// id is unknown.
func (c *Controller) LoadNode(id int64) (*domain.Node, error) {
	return c.store.GetNode(id)
}

// CommitEdit commits new content to a node's working file with versioning:
// the current on-disk state is snapshotted into the vault and recorded in
// history before the file is overwritten. If the pre-image cannot be captured
// the file is left untouched, so a failed commit never loses data. A fresh
// edit invalidates any pending redo.
func (c *Controller) CommitEdit(nodeID int64, filePath string, newContent []byte) (*CommitResult, error) {
	if nodeID <= 0 {
		return nil, &domain.ValidationError{Field: "nodeID", Message: "node id is required"}
	}

	preImage, err := c.vault.Put(filePath)
	if err != nil {
		return nil, err
	}

	grew, err := c.store.AppendHistory(nodeID, preImage)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(filePath, newContent, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	c.clearRedo(nodeID)

	return &CommitResult{
		NodeID:      nodeID,
		PreImage:    preImage,
		HistoryGrew: grew,
		Message:     "VERSION SAVED",
	}, nil
}

// Undo restores the node's working file to its most recent recorded state.
// The pre-undo content is snapshotted and pushed onto the redo stack, and the
// consumed history entry is removed. On a missing vault blob both history and
// the redo stack are left untouched.
func (c *Controller) Undo(nodeID int64, filePath string) (*UndoResult, error) {
	history, err := c.store.ReadHistory(nodeID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, domain.ErrNothingToUndo
	}

	target := history[len(history)-1]
	if !c.vault.Exists(target) {
		return nil, &domain.BlobMissingError{Digest: target}
	}

	// Capture what undo is about to discard. A working file that has gone
	// missing is not fatal here; it only means there is nothing to redo back to.
	redoDigest, err := c.vault.Put(filePath)
	if err != nil && !errors.Is(err, domain.ErrSourceFileMissing) {
		return nil, err
	}

	if err := c.vault.Restore(target, filePath); err != nil {
		return nil, err
	}

	if err := c.store.PopLastHistory(nodeID); err != nil {
		return nil, err
	}

	if redoDigest != "" {
		c.pushRedo(nodeID, redoDigest)
	}

	return &UndoResult{
		NodeID:         nodeID,
		RestoredDigest: target,
		RedoDigest:     redoDigest,
		Message:        fmt.Sprintf("UNDO: RESTORED %s", shortDigest(target)),
	}, nil
}

// Redo replays the most recently undone state. The redo entry is peeked
// first and only popped once the restore has succeeded, so a missing vault
// blob does not silently lose the entry. The pre-redo content is snapshotted
// and appended to history, making the redo itself undoable.
func (c *Controller) Redo(nodeID int64, filePath string) (*RedoResult, error) {
	target, ok := c.peekRedo(nodeID)
	if !ok {
		return nil, domain.ErrNothingToRedo
	}
	if !c.vault.Exists(target) {
		return nil, &domain.BlobMissingError{Digest: target}
	}

	current, err := c.vault.Put(filePath)
	if err != nil && !errors.Is(err, domain.ErrSourceFileMissing) {
		return nil, err
	}
	if current != "" {
		if _, err := c.store.AppendHistory(nodeID, current); err != nil {
			return nil, err
		}
	}

	if err := c.vault.Restore(target, filePath); err != nil {
		return nil, err
	}

	c.popRedo(nodeID)

	return &RedoResult{
		NodeID:         nodeID,
		RestoredDigest: target,
		Message:        fmt.Sprintf("REDO: RESTORED %s", shortDigest(target)),
	}, nil
}

// RedoDepth reports how many redo entries a node has, for shells that grey
// out the redo affordance.
func (c *Controller) RedoDepth(nodeID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.redo[nodeID])
}

func (c *Controller) pushRedo(nodeID int64, digest string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redo[nodeID] = append(c.redo[nodeID], digest)
}

func (c *Controller) peekRedo(nodeID int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stack := c.redo[nodeID]
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1], true
}

func (c *Controller) popRedo(nodeID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stack := c.redo[nodeID]
	if len(stack) > 0 {
		c.redo[nodeID] = stack[:len(stack)-1]
	}
}

func (c *Controller) clearRedo(nodeID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.redo, nodeID)
}

// shortDigest abbreviates a digest for status messages.
func shortDigest(digest string) string {
	if len(digest) > 8 {
		return digest[:8]
	}
	return digest
}

// StatusMessage translates an operation error into the short user-facing
// string shown on the shell's status line.
func StatusMessage(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, domain.ErrNothingToUndo):
		return "NO HISTORY TO UNDO"
	case errors.Is(err, domain.ErrNothingToRedo):
		return "NOTHING TO REDO"
	case errors.Is(err, domain.ErrBlobNotFound):
		return "VERSION MISSING IN VAULT"
	case errors.Is(err, domain.ErrSourceFileMissing):
		return "SOURCE FILE MISSING"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "DATABASE UNAVAILABLE"
	default:
		return fmt.Sprintf("ERROR: %v", err)
	}
}
