package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InboxEntry is a file sitting in the project's data directory.
type InboxEntry struct {
	Path   string
	NodeID int64 // 0 when the file is not yet registered
}

// Tracked reports whether the file is already registered as a node.
func (e InboxEntry) Tracked() bool {
	return e.NodeID != 0
}

// ScanInbox lists the CSV files in the project's data directory and whether
// each is already tracked. The file-watcher collaborator reacts to new
// arrivals; this is the pull-based view of the same directory.
func (s *Session) ScanInbox() ([]InboxEntry, error) {
	entries, err := os.ReadDir(s.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}

	var inbox []InboxEntry
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}

		path := filepath.Join(s.DataDir(), e.Name())
		entry := InboxEntry{Path: path}

		node, err := s.Store.GetNodeByPath(path)
		if err != nil {
			return nil, err
		}
		if node != nil {
			entry.NodeID = node.ID
		}
		inbox = append(inbox, entry)
	}
	return inbox, nil
}
