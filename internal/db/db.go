package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Project-Sylos/Arbor/internal/types"
	_ "github.com/marcboeker/go-duckdb"
)

// DB wraps the DuckDB connection and provides the transactional node
// store. Every read or write takes a caller-supplied *sql.Tx so the
// engine controls transaction boundaries; DB itself holds no locks and
// caches nothing across transactions. Concurrent transactions are
// arbitrated by DuckDB's optimistic concurrency control: a conflicting
// commit fails, which the engine surfaces as a retryable store error.
type DB struct {
	conn *sql.DB
}

// New opens a DuckDB database at the given path (empty path means
// in-memory) and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initializeSchema creates the nodes and history tables and their indexes
func (db *DB) initializeSchema() error {
	for _, stmt := range schemaStatements() {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Begin opens a transaction for one import, delete or read. The
// driver's default isolation applies: DuckDB transactions see a
// consistent snapshot and conflicting writes fail at commit.
func (db *DB) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const nodeColumns = "id, node_type, parent_id, url, size, date"

// scanNode scans one node row from either *sql.Row or *sql.Rows
func scanNode(scan func(dest ...any) error) (*types.Node, error) {
	node := &types.Node{}
	var parentNull, urlNull sql.NullString
	if err := scan(&node.ID, &node.Type, &parentNull, &urlNull, &node.Size, &node.Date); err != nil {
		return nil, err
	}
	if parentNull.Valid {
		node.ParentID = &parentNull.String
	}
	if urlNull.Valid {
		node.URL = &urlNull.String
	}
	return node, nil
}

// GetNode retrieves a node by id within the transaction.
// It returns (nil, nil) when the id does not exist.
func (db *DB) GetNode(tx *sql.Tx, id string) (*types.Node, error) {
	query := fmt.Sprintf("SELECT %s FROM nodes WHERE id = ?", nodeColumns)
	row := tx.QueryRow(query, id)

	node, err := scanNode(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get node %s: %w", id, err)
	}
	return node, nil
}

// GetChildren retrieves the direct children of a parent node
func (db *DB) GetChildren(tx *sql.Tx, parentID string) ([]*types.Node, error) {
	query := fmt.Sprintf("SELECT %s FROM nodes WHERE parent_id = ?", nodeColumns)
	rows, err := tx.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of %s: %w", parentID, err)
	}
	defer rows.Close()

	var children []*types.Node
	for rows.Next() {
		node, err := scanNode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child node: %w", err)
		}
		children = append(children, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating children: %w", err)
	}
	return children, nil
}

// SumChildSizes returns the sum of the current stored sizes of the
// direct children of a parent node (0 if it has none)
func (db *DB) SumChildSizes(tx *sql.Tx, parentID string) (int64, error) {
	var sum int64
	query := "SELECT COALESCE(SUM(size), 0) FROM nodes WHERE parent_id = ?"
	if err := tx.QueryRow(query, parentID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum child sizes of %s: %w", parentID, err)
	}
	return sum, nil
}

// UpsertNode inserts a node or replaces all mutable fields of an
// existing row with the same id
func (db *DB) UpsertNode(tx *sql.Tx, node *types.Node) error {
	query := `
INSERT INTO nodes (id, node_type, parent_id, url, size, date)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	node_type = excluded.node_type,
	parent_id = excluded.parent_id,
	url = excluded.url,
	size = excluded.size,
	date = excluded.date`

	if _, err := tx.Exec(query, node.ID, string(node.Type), node.ParentID, node.URL, node.Size, node.Date); err != nil {
		return fmt.Errorf("failed to upsert node %s: %w", node.ID, err)
	}
	return nil
}

// UpdateAggregates overwrites the derived size and date of a node
func (db *DB) UpdateAggregates(tx *sql.Tx, id string, size int64, date time.Time) error {
	result, err := tx.Exec("UPDATE nodes SET size = ?, date = ? WHERE id = ?", size, date, id)
	if err != nil {
		return fmt.Errorf("failed to update aggregates for %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("node not found: %s", id)
	}
	return nil
}

// SubtreeNodes retrieves a node and every node beneath it in one
// recursive query. The result is empty when the root id does not
// exist; order is unspecified.
func (db *DB) SubtreeNodes(tx *sql.Tx, rootID string) ([]*types.Node, error) {
	query := fmt.Sprintf(`
WITH RECURSIVE subtree AS (
	SELECT %s FROM nodes WHERE id = ?
	UNION ALL
	SELECT n.id, n.node_type, n.parent_id, n.url, n.size, n.date
	FROM nodes n
	JOIN subtree s ON n.parent_id = s.id
)
SELECT %s FROM subtree`, nodeColumns, nodeColumns)

	rows, err := tx.Query(query, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subtree of %s: %w", rootID, err)
	}
	defer rows.Close()

	var nodes []*types.Node
	for rows.Next() {
		node, err := scanNode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subtree node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subtree: %w", err)
	}
	return nodes, nil
}

// DeleteNodes removes the given ids from the nodes table
func (db *DB) DeleteNodes(tx *sql.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf("DELETE FROM nodes WHERE id IN (%s)", strings.Join(placeholders, ", "))
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to delete %d nodes: %w", len(ids), err)
	}
	return nil
}

// InsertHistory appends one audit row
func (db *DB) InsertHistory(tx *sql.Tx, rec *types.HistoryRecord) error {
	query := `
INSERT INTO history (id, node_id, op, parent_id, url, size, date)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	if _, err := tx.Exec(query, rec.ID, rec.NodeID, rec.Op, rec.ParentID, rec.URL, rec.Size, rec.Date); err != nil {
		return fmt.Errorf("failed to insert history for %s: %w", rec.NodeID, err)
	}
	return nil
}

// CountNodes returns the total number of nodes
func (db *DB) CountNodes(tx *sql.Tx) (int, error) {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return count, nil
}

// DeleteAllNodes removes all nodes and history rows (for Reset)
func (db *DB) DeleteAllNodes(tx *sql.Tx) error {
	if _, err := tx.Exec("DELETE FROM nodes"); err != nil {
		return fmt.Errorf("failed to delete from nodes table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to delete from history table: %w", err)
	}
	return nil
}
