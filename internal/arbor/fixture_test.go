package arbor

import (
	"context"
	"testing"
	"time"

	"github.com/Project-Sylos/Arbor/internal/db"
	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/stretchr/testify/require"
)

// Canonical fixture ids: a root folder holding two folders with files
// of sizes {128,256} and {512,1024,64}.
const (
	fxRoot  = "069cb8d7-bbdd-47d3-ad8f-82ef4c269df1"
	fxDocs  = "d515e43f-f3f6-4471-bb77-6b455017a2d2"
	fxFile1 = "863e1a7a-1304-42ae-943b-179184c077e3"
	fxFile2 = "b1d8fd7d-2ae3-47d5-b2f9-0f094af800d4"
	fxMedia = "1cc0129a-2bfe-474c-9ee6-d435bf5fc8f2"
	fxFile3 = "98883e8f-0507-482f-bce2-2fb306cf6483"
	fxFile4 = "74b81fda-9cdc-4b63-8927-c978afed5cf4"
	fxFile5 = "73bc3b36-02d1-4245-ab35-3106c9ee1c65"
)

func newTestEngine(t *testing.T) *Arbor {
	t.Helper()
	store, err := db.New("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func ptr[T any](v T) *T {
	return &v
}

func ts(t *testing.T, s string) types.Timestamp {
	t.Helper()
	parsed, err := types.ParseTimestamp(s)
	require.NoError(t, err)
	return parsed
}

func folderItem(id string, parentID *string) types.ImportItem {
	return types.ImportItem{ID: id, Type: types.NodeTypeFolder, ParentID: parentID}
}

func fileItem(id, url string, parentID *string, size int64) types.ImportItem {
	return types.ImportItem{
		ID:       id,
		Type:     types.NodeTypeFile,
		ParentID: parentID,
		URL:      ptr(url),
		Size:     ptr(size),
	}
}

func batch(date types.Timestamp, items ...types.ImportItem) *types.ImportBatch {
	return &types.ImportBatch{Items: items, UpdateDate: date}
}

// fixtureBatches returns the four canonical import batches
func fixtureBatches(t *testing.T) []*types.ImportBatch {
	t.Helper()
	return []*types.ImportBatch{
		batch(ts(t, "2022-02-01T12:00:00+0000"),
			folderItem(fxRoot, nil),
		),
		batch(ts(t, "2022-02-02T12:00:00+0000"),
			folderItem(fxDocs, ptr(fxRoot)),
			fileItem(fxFile1, "/file/url1", ptr(fxDocs), 128),
			fileItem(fxFile2, "/file/url2", ptr(fxDocs), 256),
		),
		batch(ts(t, "2022-02-03T12:00:00+0000"),
			folderItem(fxMedia, ptr(fxRoot)),
			fileItem(fxFile3, "/file/url3", ptr(fxMedia), 512),
			fileItem(fxFile4, "/file/url4", ptr(fxMedia), 1024),
		),
		batch(ts(t, "2022-02-03T15:00:00+0000"),
			fileItem(fxFile5, "/file/url5", ptr(fxMedia), 64),
		),
	}
}

// importFixture applies the canonical batches to an engine
func importFixture(t *testing.T, a *Arbor) {
	t.Helper()
	for i, b := range fixtureBatches(t) {
		require.NoErrorf(t, a.Import(context.Background(), b), "batch %d", i+1)
	}
}

// findChild returns the direct child with the given id, failing the
// test when it is absent
func findChild(t *testing.T, parent *types.TreeNode, id string) *types.TreeNode {
	t.Helper()
	for _, child := range parent.Children {
		if child.ID == id {
			return child
		}
	}
	t.Fatalf("child %s not found under %s", id, parent.ID)
	return nil
}

func wantTime(t *testing.T, s string) time.Time {
	t.Helper()
	return ts(t, s).Time
}
