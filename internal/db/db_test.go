package db

import (
	"context"
	"testing"
	"time"

	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/google/uuid"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New("")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string {
	return &s
}

// TestNew tests opening and schema initialization
func TestNew(t *testing.T) {
	db := newTestDB(t)
	if db.conn == nil {
		t.Fatal("Expected database connection but got nil")
	}

	tx, err := db.Begin(context.Background())
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	count, err := db.CountNodes(tx)
	if err != nil {
		t.Fatalf("Failed to count nodes: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty store, got %d nodes", count)
	}
}

// TestNodeOperations tests upsert, lookup, child listing and sums
func TestNodeOperations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	date := time.Date(2022, 2, 1, 12, 0, 0, 0, time.UTC)

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	folder := &types.Node{ID: "folder-1", Type: types.NodeTypeFolder, Date: date}
	fileA := &types.Node{
		ID:       "file-a",
		Type:     types.NodeTypeFile,
		ParentID: strPtr("folder-1"),
		URL:      strPtr("/file/a"),
		Size:     128,
		Date:     date,
	}
	fileB := &types.Node{
		ID:       "file-b",
		Type:     types.NodeTypeFile,
		ParentID: strPtr("folder-1"),
		URL:      strPtr("/file/b"),
		Size:     256,
		Date:     date,
	}

	for _, n := range []*types.Node{folder, fileA, fileB} {
		if err := db.UpsertNode(tx, n); err != nil {
			t.Fatalf("Failed to upsert %s: %v", n.ID, err)
		}
	}

	t.Run("GetNode", func(t *testing.T) {
		got, err := db.GetNode(tx, "file-a")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("Expected node but got nil")
		}
		if got.Type != types.NodeTypeFile || got.Size != 128 {
			t.Errorf("Unexpected node: %+v", got)
		}
		if got.ParentID == nil || *got.ParentID != "folder-1" {
			t.Errorf("Unexpected parent: %v", got.ParentID)
		}
		if got.URL == nil || *got.URL != "/file/a" {
			t.Errorf("Unexpected url: %v", got.URL)
		}
		if !got.Date.Equal(date) {
			t.Errorf("Unexpected date: %v", got.Date)
		}
	})

	t.Run("GetNode missing", func(t *testing.T) {
		got, err := db.GetNode(tx, "missing")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for missing id, got %+v", got)
		}
	})

	t.Run("GetChildren", func(t *testing.T) {
		children, err := db.GetChildren(tx, "folder-1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(children) != 2 {
			t.Errorf("Expected 2 children, got %d", len(children))
		}
	})

	t.Run("SumChildSizes", func(t *testing.T) {
		sum, err := db.SumChildSizes(tx, "folder-1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if sum != 384 {
			t.Errorf("Expected sum 384, got %d", sum)
		}

		sum, err = db.SumChildSizes(tx, "missing")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if sum != 0 {
			t.Errorf("Expected sum 0 for childless id, got %d", sum)
		}
	})

	t.Run("Upsert replaces fields", func(t *testing.T) {
		moved := &types.Node{
			ID:   "file-a",
			Type: types.NodeTypeFile,
			URL:  strPtr("/file/a2"),
			Size: 512,
			Date: date.Add(time.Hour),
		}
		if err := db.UpsertNode(tx, moved); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		got, err := db.GetNode(tx, "file-a")
		if err != nil {
			t.Fatal(err)
		}
		if got.Size != 512 || got.ParentID != nil || *got.URL != "/file/a2" {
			t.Errorf("Upsert did not replace fields: %+v", got)
		}
	})

	t.Run("UpdateAggregates", func(t *testing.T) {
		newDate := date.Add(2 * time.Hour)
		if err := db.UpdateAggregates(tx, "folder-1", 768, newDate); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		got, err := db.GetNode(tx, "folder-1")
		if err != nil {
			t.Fatal(err)
		}
		if got.Size != 768 || !got.Date.Equal(newDate) {
			t.Errorf("Aggregates not updated: %+v", got)
		}

		if err := db.UpdateAggregates(tx, "missing", 0, newDate); err == nil {
			t.Errorf("Expected error for missing id")
		}
	})
}

// TestSubtreeAndDelete tests the recursive subtree query and bulk delete
func TestSubtreeAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	date := time.Date(2022, 2, 1, 12, 0, 0, 0, time.UTC)

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	// root -> mid -> leaf, plus an unrelated sibling tree
	nodes := []*types.Node{
		{ID: "root", Type: types.NodeTypeFolder, Date: date},
		{ID: "mid", Type: types.NodeTypeFolder, ParentID: strPtr("root"), Date: date},
		{ID: "leaf", Type: types.NodeTypeFile, ParentID: strPtr("mid"), URL: strPtr("/leaf"), Size: 64, Date: date},
		{ID: "other", Type: types.NodeTypeFolder, Date: date},
	}
	for _, n := range nodes {
		if err := db.UpsertNode(tx, n); err != nil {
			t.Fatal(err)
		}
	}

	subtree, err := db.SubtreeNodes(tx, "root")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(subtree) != 3 {
		t.Errorf("Expected 3 subtree nodes, got %d", len(subtree))
	}

	subtree, err = db.SubtreeNodes(tx, "missing")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(subtree) != 0 {
		t.Errorf("Expected empty subtree for missing id, got %d", len(subtree))
	}

	if err := db.DeleteNodes(tx, []string{"mid", "leaf"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	count, err := db.CountNodes(tx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("Expected 2 nodes after delete, got %d", count)
	}

	if err := db.DeleteNodes(tx, nil); err != nil {
		t.Errorf("Deleting nothing should succeed: %v", err)
	}
}

// TestRollback tests that an aborted transaction leaves no trace
func TestRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	node := &types.Node{ID: "ghost", Type: types.NodeTypeFolder, Date: time.Now().UTC()}
	if err := db.UpsertNode(tx, node); err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}

	tx2, err := db.Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer tx2.Rollback()

	got, err := db.GetNode(tx2, "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Rolled-back node should not exist, got %+v", got)
	}
}

// TestInsertHistory tests the audit table insert
func TestInsertHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	rec := &types.HistoryRecord{
		ID:     uuid.New().String(),
		NodeID: "file-a",
		Op:     types.HistoryOpImport,
		URL:    strPtr("/file/a"),
		Size:   128,
		Date:   time.Now().UTC(),
	}
	if err := db.InsertHistory(tx, rec); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Same record id again must violate the primary key
	if err := db.InsertHistory(tx, rec); err == nil {
		t.Errorf("Expected primary key violation")
	}
}
