package repository

import (
	"context"
	"sync"
)

type MemoryIDRegistry struct {
	ids sync.Map
}

func NewMemoryIDRegistry() *MemoryIDRegistry {
	return &MemoryIDRegistry{}
}

func (r *MemoryIDRegistry) Reserve(ctx context.Context, id string) (bool, error) {
	_, loaded := r.ids.LoadOrStore(id, struct{}{})
	return !loaded, nil
}

func (r *MemoryIDRegistry) Seed(ctx context.Context, ids []string) error {
	for _, id := range ids {
		r.ids.Store(id, struct{}{})
	}
	return nil
}
