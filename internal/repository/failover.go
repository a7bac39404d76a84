package repository

import (
	"context"
	"sync"
	"time"

	"hotel/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverIDRegistry prefers the primary registry and falls back when it
// errors. Every id is also recorded in the fallback so a later failover
// still knows what was issued in this process. Safe for concurrent use.
type FailoverIDRegistry struct {
	primary  domain.IDRegistry
	fallback domain.IDRegistry
	logger   *zerolog.Logger

	mu        sync.Mutex
	isDown    bool
	lastCheck time.Time
}

func NewFailoverIDRegistry(primary, fallback domain.IDRegistry, logger *zerolog.Logger) *FailoverIDRegistry {
	return &FailoverIDRegistry{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverIDRegistry) usePrimary() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isDown {
		return true
	}
	// Try to recover after a minute
	return time.Since(r.lastCheck) > recoveryInterval
}

func (r *FailoverIDRegistry) markDown(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isDown {
		r.logger.Error().Err(err).Msg("Primary id registry failed, falling back to memory")
	}
	r.isDown = true
	r.lastCheck = time.Now()
}

func (r *FailoverIDRegistry) markUp() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.isDown = false
}

func (r *FailoverIDRegistry) down() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isDown
}

func (r *FailoverIDRegistry) Reserve(ctx context.Context, id string) (bool, error) {
	if r.usePrimary() {
		fresh, err := r.primary.Reserve(ctx, id)
		if err == nil {
			r.markUp()
			_ = r.fallback.Seed(ctx, []string{id})
			return fresh, nil
		}
		r.markDown(err)
	}

	return r.fallback.Reserve(ctx, id)
}

func (r *FailoverIDRegistry) Seed(ctx context.Context, ids []string) error {
	if err := r.fallback.Seed(ctx, ids); err != nil {
		return err
	}

	if r.usePrimary() {
		if err := r.primary.Seed(ctx, ids); err != nil {
			r.markDown(err)
			return nil
		}
		r.markUp()
	}
	return nil
}
