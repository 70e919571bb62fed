package types

import (
	"time"
)

// Config represents the complete configuration for Arbor
type Config struct {
	API     APIConfig     `json:"api"`
	DB      DBConfig      `json:"db"`
	Logging LoggingConfig `json:"logging"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DBConfig represents the DuckDB storage configuration.
// An empty Path opens an in-memory database.
type DBConfig struct {
	Path string `json:"path"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level string `json:"level"`
}

// NodeType is the closed FILE/FOLDER tag carried by every node.
// The type of an id never changes once the id exists.
type NodeType string

// NodeType constants
const (
	NodeTypeFile   NodeType = "FILE"
	NodeTypeFolder NodeType = "FOLDER"
)

// IsFile reports whether the tag is FILE
func (t NodeType) IsFile() bool {
	return t == NodeTypeFile
}

// IsFolder reports whether the tag is FOLDER
func (t NodeType) IsFolder() bool {
	return t == NodeTypeFolder
}

// Node represents one row of the nodes table. Ids are opaque,
// client-assigned and immutable. ParentID and URL are nullable, hence
// pointers. For FOLDER rows Size is the derived aggregate maintained
// by the engine, never client input.
type Node struct {
	ID       string    `json:"id" db:"id"`
	Type     NodeType  `json:"type" db:"node_type"`
	ParentID *string   `json:"parentId" db:"parent_id"`
	URL      *string   `json:"url" db:"url"`
	Size     int64     `json:"size" db:"size"`
	Date     time.Time `json:"date" db:"date"`
}

// TreeNode is a node annotated with its materialized children, as
// returned by subtree queries. Children is nil for FILE nodes (JSON
// null) and non-nil for FOLDER nodes, empty folders included.
type TreeNode struct {
	ID       string      `json:"id"`
	URL      *string     `json:"url"`
	Type     NodeType    `json:"type"`
	ParentID *string     `json:"parentId"`
	Date     Timestamp   `json:"date"`
	Size     int64       `json:"size"`
	Children []*TreeNode `json:"children"`
}

// ImportItem is one record of an import batch. The validate tags cover
// the per-item shape rules: FILE requires url and size, FOLDER must
// carry neither. Store-dependent rules (type immutability, parent
// resolution, cycles) are checked by the engine validator.
type ImportItem struct {
	ID       string   `json:"id" validate:"required"`
	Type     NodeType `json:"type" validate:"required,oneof=FILE FOLDER"`
	ParentID *string  `json:"parentId" validate:"omitempty,min=1"`
	URL      *string  `json:"url" validate:"required_if=Type FILE,excluded_if=Type FOLDER,omitempty,min=1,max=255"`
	Size     *int64   `json:"size" validate:"required_if=Type FILE,excluded_if=Type FOLDER,omitempty,gte=0"`
}

// ImportBatch is one atomically-applied import submission
type ImportBatch struct {
	Items      []ImportItem `json:"items"`
	UpdateDate Timestamp    `json:"updateDate"`
}

// History operation constants
const (
	HistoryOpImport = "import"
	HistoryOpDelete = "delete"
)

// HistoryRecord is one audit row, appended for every import item and
/// every cascading delete. History is write-only: no query API reads it.
type HistoryRecord struct {
	ID       string    `json:"id" db:"id"`
	NodeID   string    `json:"nodeId" db:"node_id"`
	Op       string    `json:"op" db:"op"`
	ParentID *string   `json:"parentId" db:"parent_id"`
	URL      *string   `json:"url" db:"url"`
	Size     int64     `json:"size" db:"size"`
	Date     time.Time `json:"date" db:"date"`
}
