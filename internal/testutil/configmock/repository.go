package configmock

import (
	"context"

	domain "mutualfund-backend/internal/domain/sysconfig"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo holds one config in memory and honours the version check.
type Repo struct {
	Current  *domain.SystemConfig
	UpdateFn func(ctx context.Context, c *domain.SystemConfig, expected int64) (bool, error)
}

func (m *Repo) Get(context.Context) (*domain.SystemConfig, error) {
	if m.Current == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.Current
	return &cp, nil
}

func (m *Repo) Seed(_ context.Context, c *domain.SystemConfig) error {
	if m.Current == nil {
		cp := *c
		m.Current = &cp
	}
	return nil
}

func (m *Repo) UpdateVersioned(ctx context.Context, c *domain.SystemConfig, expected int64) (bool, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c, expected)
	}
	if m.Current.Version != expected {
		return false, nil
	}
	c.Version = expected + 1
	cp := *c
	m.Current = &cp
	return true, nil
}
