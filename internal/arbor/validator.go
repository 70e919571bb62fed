package arbor

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/go-playground/validator/v10"
)

// validateBatch decides ACCEPT or REJECT for a whole batch before any
// write happens. It runs inside the import transaction so the
// referential checks see the same snapshot the apply will use.
// Each distinct rule produces its own ValidationError.
func (a *Arbor) validateBatch(tx *sql.Tx, batch *types.ImportBatch) error {
	if len(batch.Items) == 0 {
		return &ValidationError{Rule: "batch must contain at least one item"}
	}
	if batch.UpdateDate.IsZero() {
		return &ValidationError{Rule: "updateDate is required"}
	}

	// Index the batch for duplicate detection and batch-local parent
	// resolution. Later items never shadow earlier ones: a duplicate id
	// rejects the batch outright.
	byID := make(map[string]*types.ImportItem, len(batch.Items))
	for i := range batch.Items {
		item := &batch.Items[i]
		if _, dup := byID[item.ID]; dup {
			return &ValidationError{ItemID: item.ID, Rule: "duplicate id in batch"}
		}
		byID[item.ID] = item
	}

	for i := range batch.Items {
		item := &batch.Items[i]

		if err := a.validate.Struct(item); err != nil {
			return itemShapeError(item, err)
		}

		// Type immutability against the stored row
		stored, err := a.store.GetNode(tx, item.ID)
		if err != nil {
			return storeErr("validate", err)
		}
		if stored != nil && stored.Type != item.Type {
			return &ValidationError{
				ItemID: item.ID,
				Rule:   fmt.Sprintf("type of an existing item cannot change (stored %s, got %s)", stored.Type, item.Type),
			}
		}

		if item.ParentID == nil {
			continue
		}
		parentID := *item.ParentID

		if parentID == item.ID {
			return &ValidationError{ItemID: item.ID, Rule: "item cannot be its own parent"}
		}

		// The parent must resolve to a FOLDER, either elsewhere in this
		// batch or already in the store.
		if parentItem, inBatch := byID[parentID]; inBatch {
			if parentItem.Type != types.NodeTypeFolder {
				return &ValidationError{ItemID: item.ID, Rule: fmt.Sprintf("parent %s is not a FOLDER", parentID)}
			}
		} else {
			parent, err := a.store.GetNode(tx, parentID)
			if err != nil {
				return storeErr("validate", err)
			}
			if parent == nil {
				return &ValidationError{ItemID: item.ID, Rule: fmt.Sprintf("parent %s does not exist", parentID)}
			}
			if parent.Type != types.NodeTypeFolder {
				return &ValidationError{ItemID: item.ID, Rule: fmt.Sprintf("parent %s is not a FOLDER", parentID)}
			}
		}

		if err := a.checkNoCycle(tx, item.ID, parentID, byID); err != nil {
			return err
		}
	}

	return nil
}

// checkNoCycle walks up from an item's new parent through the
// effective parent graph (store state overlaid with this batch's
// re-parenting) and rejects if the walk reaches the item itself.
func (a *Arbor) checkNoCycle(tx *sql.Tx, itemID, parentID string, byID map[string]*types.ImportItem) error {
	visited := map[string]bool{itemID: true}
	cur := parentID
	for cur != "" {
		if visited[cur] {
			if cur == itemID {
				return &ValidationError{ItemID: itemID, Rule: "re-parenting would create a cycle"}
			}
			// Revisiting some other node means the batch links two items
			// into a loop that does not pass through itemID; the owning
			// item's own check rejects it.
			return nil
		}
		visited[cur] = true

		next, err := a.effectiveParent(tx, cur, byID)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// effectiveParent resolves the parent an id will have once the batch
// is applied: the batch item's parent when the id appears in the
// batch, the stored parent otherwise. Returns "" at a root or at an
// unknown id (the existence checks run separately).
func (a *Arbor) effectiveParent(tx *sql.Tx, id string, byID map[string]*types.ImportItem) (string, error) {
	if item, inBatch := byID[id]; inBatch {
		if item.ParentID == nil {
			return "", nil
		}
		return *item.ParentID, nil
	}

	node, err := a.store.GetNode(tx, id)
	if err != nil {
		return "", storeErr("validate", err)
	}
	if node == nil || node.ParentID == nil {
		return "", nil
	}
	return *node.ParentID, nil
}

// itemShapeError translates the first validator.FieldError for an item
// into a ValidationError naming the failed rule
func itemShapeError(item *types.ImportItem, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{ItemID: item.ID, Rule: err.Error()}
	}

	fe := fieldErrs[0]
	rule := fmt.Sprintf("field %s failed rule %s", fe.StructField(), fe.Tag())
	switch fe.StructField() {
	case "ID":
		rule = "id is required"
	case "Type":
		rule = "type must be FILE or FOLDER"
	case "ParentID":
		rule = "parentId must not be empty"
	case "URL":
		switch fe.Tag() {
		case "required_if":
			rule = "url is required for FILE items"
		case "excluded_if":
			rule = "url must be absent for FOLDER items"
		case "min":
			rule = "url must not be empty"
		case "max":
			rule = "url must be at most 255 characters"
		}
	case "Size":
		switch fe.Tag() {
		case "required_if":
			rule = "size is required for FILE items"
		case "excluded_if":
			rule = "size must be absent for FOLDER items"
		case "gte":
			rule = "size must be a non-negative integer"
		}
	}

	return &ValidationError{ItemID: item.ID, Rule: rule}
}
