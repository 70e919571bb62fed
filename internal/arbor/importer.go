package arbor

import (
	"context"

	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/google/uuid"
)

// Import applies one batch atomically: validate, upsert every item,
// append audit rows, then recompute every touched ancestor chain. Any
// failure rolls the transaction back with no partial effect, so a
// caller may safely retry a batch whose transaction did not commit.
func (a *Arbor) Import(ctx context.Context, batch *types.ImportBatch) error {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return storeErr("import", err)
	}
	defer tx.Rollback()

	if err := a.validateBatch(tx, batch); err != nil {
		a.log.Debug().Err(err).Int("items", len(batch.Items)).Msg("batch rejected")
		return err
	}

	date := batch.UpdateDate.Time

	// Distinct former parents of re-parented items; their chains lost a
	// descendant and need recomputing too.
	oldParents := make(map[string]bool)

	for i := range batch.Items {
		item := &batch.Items[i]

		stored, err := a.store.GetNode(tx, item.ID)
		if err != nil {
			return storeErr("import", err)
		}

		node := &types.Node{
			ID:       item.ID,
			Type:     item.Type,
			ParentID: item.ParentID,
			Date:     date,
		}
		if item.Type.IsFile() {
			node.URL = item.URL
			node.Size = *item.Size
		} else if stored != nil {
			// A FOLDER's size is derived; keep the stored aggregate until
			// the recompute below rather than zeroing it in between.
			node.Size = stored.Size
		}

		if err := a.store.UpsertNode(tx, node); err != nil {
			return storeErr("import", err)
		}

		if stored != nil && stored.ParentID != nil && !sameParent(stored.ParentID, item.ParentID) {
			oldParents[*stored.ParentID] = true
		}

		rec := &types.HistoryRecord{
			ID:       uuid.New().String(),
			NodeID:   node.ID,
			Op:       types.HistoryOpImport,
			ParentID: node.ParentID,
			URL:      node.URL,
			Size:     node.Size,
			Date:     date,
		}
		if err := a.store.InsertHistory(tx, rec); err != nil {
			return storeErr("import", err)
		}
	}

	// Every item seeds an upward walk, so each touched chain gets its
	// folder sums recomputed bottom-up and its dates raised to the
	// batch date. Chains overlap near the root; the walk is idempotent.
	for i := range batch.Items {
		if err := a.recomputeChain(tx, batch.Items[i].ID, date, true); err != nil {
			return err
		}
	}
	for parentID := range oldParents {
		if err := a.recomputeChain(tx, parentID, date, true); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("import", err)
	}

	a.log.Info().Int("items", len(batch.Items)).Time("updateDate", date).Msg("batch applied")
	return nil
}

// sameParent compares two nullable parent references
func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
