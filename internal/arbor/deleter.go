package arbor

import (
	"context"
	"time"

	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/google/uuid"
)

// Delete atomically removes a node and its entire subtree, then
// recomputes the former parent's aggregate sizes. The timestamp is
// recorded in the audit history only; it never gates the delete and
// ancestor dates are not advanced by it.
func (a *Arbor) Delete(ctx context.Context, id string, date time.Time) error {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return storeErr("delete", err)
	}
	defer tx.Rollback()

	node, err := a.store.GetNode(tx, id)
	if err != nil {
		return storeErr("delete", err)
	}
	if node == nil {
		return &NotFoundError{ID: id}
	}

	subtree, err := a.store.SubtreeNodes(tx, id)
	if err != nil {
		return storeErr("delete", err)
	}
	ids := make([]string, len(subtree))
	for i, n := range subtree {
		ids[i] = n.ID
	}

	if err := a.store.DeleteNodes(tx, ids); err != nil {
		return storeErr("delete", err)
	}

	rec := &types.HistoryRecord{
		ID:       uuid.New().String(),
		NodeID:   node.ID,
		Op:       types.HistoryOpDelete,
		ParentID: node.ParentID,
		URL:      node.URL,
		Size:     node.Size,
		Date:     date,
	}
	if err := a.store.InsertHistory(tx, rec); err != nil {
		return storeErr("delete", err)
	}

	// The former parent lost a descendant: recompute its chain's sizes
	// after the rows are gone. Dates stay as they were.
	if node.ParentID != nil {
		if err := a.recomputeChain(tx, *node.ParentID, date, false); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("delete", err)
	}

	a.log.Info().Str("id", id).Int("removed", len(ids)).Msg("subtree deleted")
	return nil
}
