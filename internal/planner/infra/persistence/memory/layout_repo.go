package memory

import (
	"context"
	"sync"
	"time"

	"AlliancePlanner/internal/planner/domain"
)

// LayoutRepository 把布局放在进程内存里，重启即丢失。
type LayoutRepository struct {
	mu      sync.RWMutex
	layouts map[string]domain.Layout
}

func NewLayoutRepository() *LayoutRepository {
	return &LayoutRepository{layouts: make(map[string]domain.Layout)}
}

func (r *LayoutRepository) Load(ctx context.Context, id string) (domain.Layout, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.layouts[id]
	if !ok {
		return domain.Layout{}, domain.ErrLayoutNotFound
	}
	return l, nil
}

func (r *LayoutRepository) Save(ctx context.Context, l domain.Layout) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if old, ok := r.layouts[l.ID]; ok && !old.CreatedAt.IsZero() {
		l.CreatedAt = old.CreatedAt
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}
	r.layouts[l.ID] = l
	return nil
}

func (r *LayoutRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.layouts)
}
