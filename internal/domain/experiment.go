package domain

import (
	"encoding/json"
	"time"
)

// DefaultBranch is the grouping label used when registration does not name one.
const DefaultBranch = "main"

// DefaultResearcher is stamped on nodes registered without a researcher name.
const DefaultResearcher = "ANONYMOUS"

// Node is a single experiment record: identity, lineage pointers, free-form
// metadata, and a pointer to one mutable working file on disk. File content
// itself is versioned through the vault; metadata is last-write-wins and not
// versioned.
type Node struct {
	ID           int64
	CreatedAt    time.Time
	Name         string
	FilePath     string
	AnalysisJSON string
	ParentID     *int64 // nil for nodes that start a branch on their own
	Branch       string
	Researcher   string
	Notes        string
	Temperature  string
	SampleID     string
	PlotSettings string // serialized PlotSettings, empty if never set
}

// LineageRow is the slim projection used for tree rendering. GetLineage
// returns these ordered by ID ascending, so a parent always appears before
// any of its children.
type LineageRow struct {
	ID       int64
	ParentID *int64
	Branch   string
	Name     string
}

// PlotSettings records the axis columns last chosen for a node.
type PlotSettings struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// EncodePlotSettings serializes axis settings for storage.
func EncodePlotSettings(x, y string) (string, error) {
	raw, err := json.Marshal(PlotSettings{X: x, Y: y})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodePlotSettings parses stored axis settings. An empty payload yields
// zero-value settings, not an error.
func DecodePlotSettings(raw string) (PlotSettings, error) {
	var ps PlotSettings
	if raw == "" {
		return ps, nil
	}
	err := json.Unmarshal([]byte(raw), &ps)
	return ps, err
}
