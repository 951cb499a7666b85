package sysconfig

import "context"

type Repository interface {
	// Get returns the latest committed config.
	Get(ctx context.Context) (*SystemConfig, error)
	// Seed inserts the singleton row if it does not exist yet.
	Seed(ctx context.Context, c *SystemConfig) error
	// UpdateVersioned writes c when the stored version equals expected and bumps it.
	// ok is false when another writer got there first.
	UpdateVersioned(ctx context.Context, c *SystemConfig, expected int64) (ok bool, err error)
}
