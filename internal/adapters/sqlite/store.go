package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"scivault/internal/domain"
	"scivault/internal/ports"

	"github.com/mattn/go-sqlite3"
)

// Store implements ports.LineageStore on a single SQLite file. One connection
// is opened per project and shared across all callers; a store-wide mutex
// spans every method's SQL so worker and maintenance goroutines never
// interleave statements.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Ensure Store implements LineageStore
var _ ports.LineageStore = (*Store)(nil)

// Open opens (creating if needed) the lineage database at dbPath and applies
// the schema. A failure here means the session cannot version anything and is
// reported as domain.ErrStoreUnavailable.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %v", domain.ErrStoreUnavailable, err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// Pragmas + schema in a single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS experiments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME,
			name TEXT,
			file_path TEXT UNIQUE,
			analysis_json TEXT,
			parent_id INTEGER,
			branch_name TEXT,
			researcher_name TEXT DEFAULT 'ANONYMOUS',
			notes TEXT,
			temperature TEXT,
			sample_id TEXT,
			plot_settings TEXT,
			FOREIGN KEY (parent_id) REFERENCES experiments (id)
		);
		CREATE TABLE IF NOT EXISTS node_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			node_id INTEGER NOT NULL,
			file_hash TEXT NOT NULL,
			timestamp DATETIME,
			FOREIGN KEY (node_id) REFERENCES experiments (id)
		);
		CREATE INDEX IF NOT EXISTS idx_history_node ON node_history(node_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to apply schema: %v", domain.ErrStoreUnavailable, err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RegisterNode inserts a new experiment row and returns its id. Registration
// is idempotent on filePath: if the path is already tracked the existing id
// comes back unchanged. The lock spans the check-then-insert, and a UNIQUE
// violation from a racing insert resolves to the winner's id.
func (s *Store) RegisterNode(name, filePath, analysisJSON string, parentID *int64, branch, researcher string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, found, err := s.idByPath(filePath); err != nil {
		return 0, err
	} else if found {
		return id, nil
	}

	if branch == "" {
		branch = domain.DefaultBranch
	}
	if researcher == "" {
		researcher = domain.DefaultResearcher
	}

	res, err := s.db.Exec(`
		INSERT INTO experiments (timestamp, name, file_path, analysis_json, parent_id, branch_name, researcher_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, time.Now().Format(time.RFC3339), name, filePath, analysisJSON, nullID(parentID), branch, researcher)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
			// Lost the insert race: another caller registered the path
			// between our lookup and insert. Their row wins.
			id, found, qerr := s.idByPath(filePath)
			if qerr != nil {
				return 0, qerr
			}
			if found {
				return id, nil
			}
		}
		return 0, fmt.Errorf("failed to register node: %w", err)
	}

	return res.LastInsertId()
}

// GetNode retrieves a full experiment row. Returns (nil, nil) if not found.
func (s *Store) GetNode(id int64) (*domain.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanNode(s.db.QueryRow(`
		SELECT id, timestamp, name, file_path, analysis_json, parent_id,
		       branch_name, researcher_name, notes, temperature, sample_id, plot_settings
		FROM experiments WHERE id = ?
	`, id))
}

// GetNodeByPath retrieves the experiment tracking filePath. Returns (nil, nil)
// if the path is untracked.
func (s *Store) GetNodeByPath(filePath string) (*domain.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanNode(s.db.QueryRow(`
		SELECT id, timestamp, name, file_path, analysis_json, parent_id,
		       branch_name, researcher_name, notes, temperature, sample_id, plot_settings
		FROM experiments WHERE file_path = ?
	`, filePath))
}

// GetLineage returns every node ordered by id ascending. Consumers rely on
// this ordering to see parents before children.
func (s *Store) GetLineage() ([]domain.LineageRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, parent_id, branch_name, name FROM experiments ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read lineage: %w", err)
	}
	defer rows.Close()

	var lineage []domain.LineageRow
	for rows.Next() {
		var row domain.LineageRow
		var parent sql.NullInt64
		var branch, name sql.NullString
		if err := rows.Scan(&row.ID, &parent, &branch, &name); err != nil {
			return nil, err
		}
		if parent.Valid {
			row.ParentID = &parent.Int64
		}
		row.Branch = branch.String
		row.Name = name.String
		lineage = append(lineage, row)
	}
	return lineage, rows.Err()
}

// UpdateMetadata saves the researcher's manual edits. Last write wins;
// metadata itself is not versioned.
func (s *Store) UpdateMetadata(id int64, notes, temperature, sampleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
		UPDATE experiments SET notes = ?, temperature = ?, sample_id = ? WHERE id = ?
	`, notes, temperature, sampleID, id)
	return err
}

// UpdatePlotSettings saves the last chosen axis columns for a node.
func (s *Store) UpdatePlotSettings(id int64, xCol, yCol string) error {
	raw, err := domain.EncodePlotSettings(xCol, yCol)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`UPDATE experiments SET plot_settings = ? WHERE id = ?`, raw, id)
	return err
}

// UpdateAnalysis overwrites a node's analysis payload.
func (s *Store) UpdateAnalysis(id int64, analysisJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`UPDATE experiments SET analysis_json = ? WHERE id = ?`, analysisJSON, id)
	return err
}

// AppendHistory appends a digest to the node's history unless it equals the
// newest entry. The lock spans the duplicate check and the insert.
func (s *Store) AppendHistory(nodeID int64, digest string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var last string
	err := s.db.QueryRow(`
		SELECT file_hash FROM node_history WHERE node_id = ? ORDER BY id DESC LIMIT 1
	`, nodeID).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to read history: %w", err)
	}
	if err == nil && last == digest {
		return false, nil
	}

	_, err = s.db.Exec(`
		INSERT INTO node_history (node_id, file_hash, timestamp) VALUES (?, ?, ?)
	`, nodeID, digest, time.Now().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to append history: %w", err)
	}
	return true, nil
}

// ReadHistory returns the node's digests oldest first.
func (s *Store) ReadHistory(nodeID int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT file_hash FROM node_history WHERE node_id = ? ORDER BY id ASC
	`, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var digests []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}
	return digests, rows.Err()
}

// PopLastHistory removes the newest history row for a node. No-op when the
// history is empty.
func (s *Store) PopLastHistory(nodeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		DELETE FROM node_history WHERE id = (
			SELECT id FROM node_history WHERE node_id = ? ORDER BY id DESC LIMIT 1
		)
	`, nodeID)
	return err
}

// PruneMissing deletes experiment rows whose working file no longer exists on
// disk, along with their history rows. Vault blobs are never touched.
func (s *Store) PruneMissing() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, file_path FROM experiments`)
	if err != nil {
		return 0, fmt.Errorf("failed to scan experiments: %w", err)
	}

	var stale []int64
	for rows.Next() {
		var id int64
		var path sql.NullString
		if err := rows.Scan(&id, &path); err != nil {
			rows.Close()
			return 0, err
		}
		if _, statErr := os.Stat(path.String); statErr != nil {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	for _, id := range stale {
		if _, err := s.db.Exec(`DELETE FROM node_history WHERE node_id = ?`, id); err != nil {
			return 0, err
		}
		if _, err := s.db.Exec(`DELETE FROM experiments WHERE id = ?`, id); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// idByPath looks up a node id by file path. Callers must hold the lock.
func (s *Store) idByPath(filePath string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM experiments WHERE file_path = ?`, filePath).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up path: %w", err)
	}
	return id, true, nil
}

// scanNode reads a full experiment row. Callers must hold the lock.
func (s *Store) scanNode(row *sql.Row) (*domain.Node, error) {
	var node domain.Node
	var ts, name, path, analysis, branch, researcher sql.NullString
	var notes, temperature, sampleID, plotSettings sql.NullString
	var parent sql.NullInt64

	err := row.Scan(&node.ID, &ts, &name, &path, &analysis, &parent,
		&branch, &researcher, &notes, &temperature, &sampleID, &plotSettings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read node: %w", err)
	}

	if ts.Valid {
		if parsed, perr := time.Parse(time.RFC3339, ts.String); perr == nil {
			node.CreatedAt = parsed
		}
	}
	node.Name = name.String
	node.FilePath = path.String
	node.AnalysisJSON = analysis.String
	if parent.Valid {
		node.ParentID = &parent.Int64
	}
	node.Branch = branch.String
	node.Researcher = researcher.String
	node.Notes = notes.String
	node.Temperature = temperature.String
	node.SampleID = sampleID.String
	node.PlotSettings = plotSettings.String

	return &node, nil
}

// nullID returns nil for absent parent ids (for the nullable column).
func nullID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
