package arbor

import (
	"context"

	"github.com/Project-Sylos/Arbor/internal/db"
	"github.com/Project-Sylos/Arbor/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Arbor is the tree import and aggregation engine. It composes the
// validator, import engine, aggregator, tree reader and delete engine
// over one transactional node store. The engine holds no mutable state
// of its own: every operation runs inside a single store transaction
// and re-reads current state through it, so concurrent callers are
// serialized by the store, not by the engine.
type Arbor struct {
	store    *db.DB
	validate *validator.Validate
	log      zerolog.Logger
}

// New creates an engine on top of an open node store
func New(store *db.DB) *Arbor {
	return &Arbor{
		store:    store,
		validate: validator.New(),
		log:      logger.Get("arbor"),
	}
}

// CountNodes returns the total number of stored nodes
func (a *Arbor) CountNodes(ctx context.Context) (int, error) {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return 0, storeErr("count", err)
	}
	defer tx.Rollback()

	count, err := a.store.CountNodes(tx)
	if err != nil {
		return 0, storeErr("count", err)
	}
	return count, nil
}

// Reset removes every node and history row
func (a *Arbor) Reset(ctx context.Context) error {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return storeErr("reset", err)
	}
	defer tx.Rollback()

	if err := a.store.DeleteAllNodes(tx); err != nil {
		return storeErr("reset", err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr("reset", err)
	}

	a.log.Info().Msg("store reset")
	return nil
}

// Close closes the underlying store
func (a *Arbor) Close() error {
	return a.store.Close()
}
