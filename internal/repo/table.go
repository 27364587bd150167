package repo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cocosip/go-huffman-codec/internal/model"
)

var ErrNotFound = errors.New("not found")

// TableRepo stores code tables by id
type TableRepo interface {
	Save(ctx context.Context, t *model.Table) error
	FindByID(ctx context.Context, id string) (*model.Table, error)
	// List returns every table, oldest first
	List(ctx context.Context) ([]*model.Table, error)
}

type tableRepoInMemory struct {
	mu    sync.RWMutex
	store map[string]*model.Table
}

func NewTableRepoInMemory() TableRepo {
	return &tableRepoInMemory{store: make(map[string]*model.Table)}
}

func (r *tableRepoInMemory) Save(_ context.Context, t *model.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[t.ID] = t
	return nil
}

func (r *tableRepoInMemory) FindByID(_ context.Context, id string) (*model.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (r *tableRepoInMemory) List(_ context.Context) ([]*model.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Table, 0, len(r.store))
	for _, t := range r.store {
		out = append(out, t)
	}
	sortTables(out)
	return out, nil
}

func sortTables(ts []*model.Table) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.Before(ts[j].CreatedAt)
		}
		return ts[i].ID < ts[j].ID
	})
}
