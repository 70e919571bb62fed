package arbor

import (
	"database/sql"
	"time"
)

// recomputeChain restores the size and date invariants from a changed
// node up to its root. Every visit re-reads current state inside the
// transaction: a FOLDER's size becomes the sum of its direct
// children's current sizes (children lower in the chain were already
// recomputed, so the walk is bottom-up), and when raiseDates is set
// the node's date becomes max(stored date, date). Deletes recompute
// sizes only and leave ancestor dates alone.
func (a *Arbor) recomputeChain(tx *sql.Tx, startID string, date time.Time, raiseDates bool) error {
	visited := make(map[string]bool)

	cur := startID
	for cur != "" && !visited[cur] {
		visited[cur] = true

		node, err := a.store.GetNode(tx, cur)
		if err != nil {
			return storeErr("aggregate", err)
		}
		if node == nil {
			// Chain seeds come from just-written rows, so a missing node
			// can only be a root's absent parent.
			return nil
		}

		size := node.Size
		if node.Type.IsFolder() {
			size, err = a.store.SumChildSizes(tx, cur)
			if err != nil {
				return storeErr("aggregate", err)
			}
		}

		nodeDate := node.Date
		if raiseDates && date.After(nodeDate) {
			nodeDate = date
		}

		if size != node.Size || !nodeDate.Equal(node.Date) {
			if err := a.store.UpdateAggregates(tx, cur, size, nodeDate); err != nil {
				return storeErr("aggregate", err)
			}
		}

		if node.ParentID == nil {
			return nil
		}
		cur = *node.ParentID
	}
	return nil
}
