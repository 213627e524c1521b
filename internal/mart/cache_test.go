package mart

import (
	"context"
	"errors"
	"testing"
	"time"

	"analytics-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	calls int
	rows  []models.Transaction
	err   error
}

func (s *stubLoader) Load(ctx context.Context) ([]models.Transaction, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func TestCacheServesWithinTTL(t *testing.T) {
	loader := &stubLoader{rows: []models.Transaction{filterRow("O1", "SP", "2018-01")}}
	now := time.Unix(0, 0)
	cache := NewCache(loader, time.Hour, func() time.Time { return now })

	ctx := context.Background()
	first, err := cache.Table(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	now = now.Add(30 * time.Minute)
	_, err = cache.Table(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, loader.calls)
}

func TestCacheReloadsAfterTTL(t *testing.T) {
	loader := &stubLoader{rows: []models.Transaction{filterRow("O1", "SP", "2018-01")}}
	now := time.Unix(0, 0)
	cache := NewCache(loader, time.Hour, func() time.Time { return now })

	ctx := context.Background()
	_, err := cache.Table(ctx)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = cache.Table(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, loader.calls)
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	loader := &stubLoader{rows: []models.Transaction{filterRow("O1", "SP", "2018-01")}}
	now := time.Unix(0, 0)
	cache := NewCache(loader, time.Hour, func() time.Time { return now })

	ctx := context.Background()
	_, err := cache.Table(ctx)
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestCacheServesStaleOnReloadFailure(t *testing.T) {
	loader := &stubLoader{rows: []models.Transaction{filterRow("O1", "SP", "2018-01")}}
	now := time.Unix(0, 0)
	cache := NewCache(loader, time.Hour, func() time.Time { return now })

	ctx := context.Background()
	_, err := cache.Table(ctx)
	require.NoError(t, err)

	loader.err = errors.New("source down")
	now = now.Add(2 * time.Hour)

	rows, err := cache.Table(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCacheFirstLoadFailurePropagates(t *testing.T) {
	loader := &stubLoader{err: errors.New("source down")}
	cache := NewCache(loader, time.Hour, nil)

	_, err := cache.Table(context.Background())
	assert.Error(t, err)
}
