package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRegistry struct {
	mock.Mock
}

func (m *mockRegistry) Reserve(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRegistry) Seed(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func TestFailoverIDRegistry(t *testing.T) {
	primary := new(mockRegistry)
	fallback := NewMemoryIDRegistry()
	logger := zerolog.New(io.Discard)
	repo := NewFailoverIDRegistry(primary, fallback, &logger)
	ctx := context.Background()

	t.Run("PrimarySuccessMirrorsFallback", func(t *testing.T) {
		primary.On("Reserve", ctx, "aaaa0001").Return(true, nil).Once()

		ok, err := repo.Reserve(ctx, "aaaa0001")
		assert.NoError(t, err)
		assert.True(t, ok)
		primary.AssertExpectations(t)

		known, _ := fallback.Reserve(ctx, "aaaa0001")
		assert.False(t, known)
	})

	t.Run("PrimaryFailFallback", func(t *testing.T) {
		primary.On("Reserve", ctx, "aaaa0002").Return(false, errors.New("fail")).Once()

		ok, err := repo.Reserve(ctx, "aaaa0002")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, repo.down())
		primary.AssertExpectations(t)
	})

	t.Run("StaysOnFallbackWhileDown", func(t *testing.T) {
		ok, err := repo.Reserve(ctx, "aaaa0001")
		assert.NoError(t, err)
		assert.False(t, ok)
		primary.AssertNumberOfCalls(t, "Reserve", 2)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		repo.mu.Lock()
		repo.isDown = true
		repo.lastCheck = time.Now().Add(-2 * time.Minute)
		repo.mu.Unlock()
		primary.On("Reserve", ctx, "aaaa0003").Return(true, nil).Once()

		ok, err := repo.Reserve(ctx, "aaaa0003")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, repo.down())
		primary.AssertExpectations(t)
	})

	t.Run("SeedPrimaryFail", func(t *testing.T) {
		ids := []string{"bbbb0001"}
		primary.On("Seed", ctx, ids).Return(errors.New("fail")).Once()

		err := repo.Seed(ctx, ids)
		assert.NoError(t, err)
		assert.True(t, repo.down())

		ok, _ := repo.Reserve(ctx, "bbbb0001")
		assert.False(t, ok)
		primary.AssertExpectations(t)
	})
}

func TestFailoverIDRegistry_ConcurrentFailover(t *testing.T) {
	primary := new(mockRegistry)
	primary.On("Reserve", mock.Anything, mock.Anything).Return(false, errors.New("fail"))
	logger := zerolog.New(io.Discard)
	repo := NewFailoverIDRegistry(primary, NewMemoryIDRegistry(), &logger)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := repo.Reserve(ctx, fmt.Sprintf("cccc%04d", i))
			assert.NoError(t, err)
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()

	assert.True(t, repo.down())
	ok, err := repo.Reserve(ctx, "cccc0000")
	assert.NoError(t, err)
	assert.False(t, ok)
}
