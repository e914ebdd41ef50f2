package app

import (
	"context"
	"errors"
	"sync"

	"AlliancePlanner/internal/planner/domain"
)

type sinkRecorder struct {
	events []Event
}

func (s *sinkRecorder) Push(ev Event) { s.events = append(s.events, ev) }

func (s *sinkRecorder) names() []string {
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Name)
	}
	return out
}

func (s *sinkRecorder) count(name string) int {
	n := 0
	for _, ev := range s.events {
		if ev.Name == name {
			n++
		}
	}
	return n
}

type memPrefs struct {
	size  int
	saved []int
	err   error
}

func (p *memPrefs) GridSize() (int, bool) { return p.size, p.size != 0 }

func (p *memPrefs) SaveGridSize(n int) error {
	if p.err != nil {
		return p.err
	}
	p.saved = append(p.saved, n)
	p.size = n
	return nil
}

type memRepo struct {
	mu      sync.Mutex
	layouts map[string]domain.Layout
	failErr error
}

func newMemRepo() *memRepo { return &memRepo{layouts: map[string]domain.Layout{}} }

func (r *memRepo) Load(_ context.Context, id string) (domain.Layout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return domain.Layout{}, r.failErr
	}
	l, ok := r.layouts[id]
	if !ok {
		return domain.Layout{}, domain.ErrLayoutNotFound
	}
	return l, nil
}

func (r *memRepo) Save(_ context.Context, l domain.Layout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.layouts[l.ID] = l
	return nil
}

var errRepoDown = errors.New("connection refused")
