package ports

import "scivault/internal/domain"

// LineageStore defines transactional persistence of experiment nodes and
// their per-node snapshot history. Implementations must be safe for calls
// from more than one goroutine.
type LineageStore interface {
	// RegisterNode is idempotent on filePath: registering an already-tracked
	// path returns the existing node's id unchanged.
	RegisterNode(name, filePath, analysisJSON string, parentID *int64, branch, researcher string) (int64, error)

	// GetNode returns (nil, nil) when no node has that id.
	GetNode(id int64) (*domain.Node, error)

	// GetNodeByPath returns (nil, nil) when the path is untracked.
	GetNodeByPath(filePath string) (*domain.Node, error)

	// GetLineage returns every node ordered by id ascending, so parents are
	// enumerable before their children.
	GetLineage() ([]domain.LineageRow, error)

	UpdateMetadata(id int64, notes, temperature, sampleID string) error
	UpdatePlotSettings(id int64, xCol, yCol string) error
	UpdateAnalysis(id int64, analysisJSON string) error

	// AppendHistory appends a digest to the node's history unless it equals
	// the newest entry. Reports whether a row was added.
	AppendHistory(nodeID int64, digest string) (bool, error)

	// ReadHistory returns the node's digests oldest first.
	ReadHistory(nodeID int64) ([]string, error)

	// PopLastHistory removes the newest history row; no-op when empty.
	PopLastHistory(nodeID int64) error

	// PruneMissing deletes nodes whose working file no longer exists on disk,
	// along with their history rows. Returns how many nodes were removed.
	PruneMissing() (int, error)

	Close() error
}
