package arbor

import (
	"context"

	"github.com/Project-Sylos/Arbor/internal/types"
)

// GetSubtree returns a node and, for a FOLDER, its fully materialized
// subtree. Sizes and dates are returned as maintained by the importer;
// nothing is recomputed at read time. Child order is unspecified.
func (a *Arbor) GetSubtree(ctx context.Context, id string) (*types.TreeNode, error) {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return nil, storeErr("read", err)
	}
	defer tx.Rollback()

	nodes, err := a.store.SubtreeNodes(tx, id)
	if err != nil {
		return nil, storeErr("read", err)
	}
	if len(nodes) == 0 {
		return nil, &NotFoundError{ID: id}
	}

	return buildTree(nodes, id), nil
}

// buildTree assembles flat subtree rows into a TreeNode. The rows are
// exactly the requested node plus its descendants, so every parent
// except the root's is present in the set.
func buildTree(nodes []*types.Node, rootID string) *types.TreeNode {
	byID := make(map[string]*types.TreeNode, len(nodes))
	for _, node := range nodes {
		tn := &types.TreeNode{
			ID:       node.ID,
			URL:      node.URL,
			Type:     node.Type,
			ParentID: node.ParentID,
			Date:     types.NewTimestamp(node.Date),
			Size:     node.Size,
		}
		if node.Type.IsFolder() {
			tn.Children = make([]*types.TreeNode, 0)
		}
		byID[node.ID] = tn
	}

	for _, node := range nodes {
		if node.ID == rootID || node.ParentID == nil {
			continue
		}
		if parent, ok := byID[*node.ParentID]; ok {
			parent.Children = append(parent.Children, byID[node.ID])
		}
	}

	return byID[rootID]
}
