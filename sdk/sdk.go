package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/Project-Sylos/Arbor/internal/arbor"
	"github.com/Project-Sylos/Arbor/internal/config"
	"github.com/Project-Sylos/Arbor/internal/db"
	"github.com/Project-Sylos/Arbor/internal/types"
)

// Arbor is the public SDK interface for the tree import engine.
// It wraps the internal implementation to provide a clean public API.
type Arbor struct {
	impl *arbor.Arbor
	cfg  *types.Config
}

// New creates a new Arbor instance using the specified config file
func New(configPath string) (*Arbor, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewFromConfig(cfg)
}

// NewFromConfig creates a new Arbor instance from an in-memory config
func NewFromConfig(cfg *types.Config) (*Arbor, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	store, err := db.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &Arbor{
		impl: arbor.New(store),
		cfg:  cfg,
	}, nil
}

// Import atomically applies one batch of created/updated/moved nodes
func (a *Arbor) Import(ctx context.Context, batch *types.ImportBatch) error {
	return a.impl.Import(ctx, batch)
}

// GetSubtree returns a node and its fully materialized subtree
func (a *Arbor) GetSubtree(ctx context.Context, id string) (*types.TreeNode, error) {
	return a.impl.GetSubtree(ctx, id)
}

// Delete cascades deletion of a node and its entire subtree.
// The timestamp is recorded for audit only.
func (a *Arbor) Delete(ctx context.Context, id string, date time.Time) error {
	return a.impl.Delete(ctx, id, date)
}

// CountNodes returns the total number of stored nodes
func (a *Arbor) CountNodes(ctx context.Context) (int, error) {
	return a.impl.CountNodes(ctx)
}

// Reset clears all nodes and history
func (a *Arbor) Reset(ctx context.Context) error {
	return a.impl.Reset(ctx)
}

// GetConfig returns the active configuration
func (a *Arbor) GetConfig() *types.Config {
	return a.cfg
}

// Close closes the underlying store
func (a *Arbor) Close() error {
	return a.impl.Close()
}
