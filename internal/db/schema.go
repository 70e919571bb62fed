package db

// nodesTableSQL creates the flat node table. The tree is the closure
// of parent_id links; there is no separate tree entity.
const nodesTableSQL = `
CREATE TABLE IF NOT EXISTS nodes (
	id VARCHAR PRIMARY KEY,
	parent_id VARCHAR,
	node_type VARCHAR NOT NULL,
	url VARCHAR,
	size BIGINT NOT NULL DEFAULT 0,
	date TIMESTAMPTZ NOT NULL
)`

// historyTableSQL creates the append-only audit table. Rows get
// server-generated UUID ids; nothing in the service reads them back.
const historyTableSQL = `
CREATE TABLE IF NOT EXISTS history (
	id VARCHAR PRIMARY KEY,
	node_id VARCHAR NOT NULL,
	op VARCHAR NOT NULL,
	parent_id VARCHAR,
	url VARCHAR,
	size BIGINT NOT NULL DEFAULT 0,
	date TIMESTAMPTZ NOT NULL
)`

// indexesSQL speeds up child listing and upward walks
const indexesSQL = `
CREATE INDEX IF NOT EXISTS idx_nodes_parent_id ON nodes (parent_id);
CREATE INDEX IF NOT EXISTS idx_history_node_id ON history (node_id)`

// schemaStatements returns the DDL to run on startup, in order
func schemaStatements() []string {
	return []string{nodesTableSQL, historyTableSQL, indexesSQL}
}
