package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type countingGetter struct {
	calls    int
	services map[int64]*domain.Service
}

func (g *countingGetter) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	g.calls++
	s, ok := g.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	copied := *s
	return &copied, nil
}

func TestCachedRepository_GetByID(t *testing.T) {
	source := &countingGetter{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Портрет", Price: decimal.NewFromInt(3000), DurationMinutes: 60},
	}}
	repo := NewCachedRepository(source, time.Minute, time.Minute)
	ctx := context.Background()

	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	// изменение возвращённого значения не портит кеш
	first.DurationMinutes = 5

	second, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 60, second.DurationMinutes)
}

func TestCachedRepository_NotFoundIsNotCached(t *testing.T) {
	source := &countingGetter{services: map[int64]*domain.Service{}}
	repo := NewCachedRepository(source, time.Minute, time.Minute)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 7)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	source.services[7] = &domain.Service{ID: 7, Name: "Семейная съёмка", DurationMinutes: 120}

	service, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 120, service.DurationMinutes)
	assert.Equal(t, 2, source.calls)
}

func TestCachedRepository_Invalidate(t *testing.T) {
	source := &countingGetter{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60},
	}}
	repo := NewCachedRepository(source, time.Minute, time.Minute)
	ctx := context.Background()

	_, _ = repo.GetByID(ctx, 1)
	repo.Invalidate(1)
	_, _ = repo.GetByID(ctx, 1)

	assert.Equal(t, 2, source.calls)
}

func TestCachedRepository_GetFreshBypassesCache(t *testing.T) {
	source := &countingGetter{services: map[int64]*domain.Service{
		1: {ID: 1, Price: decimal.NewFromInt(3000), DurationMinutes: 60},
	}}
	repo := NewCachedRepository(source, time.Minute, time.Minute)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	source.services[1] = &domain.Service{ID: 1, Price: decimal.NewFromInt(3500), DurationMinutes: 90}

	fresh, err := repo.GetFresh(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 90, fresh.DurationMinutes)

	// свежее значение попадает в кеш
	cached, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3500).Equal(cached.Price))
	assert.Equal(t, 2, source.calls)
}

func TestCachedRepository_GetFreshDropsDeletedService(t *testing.T) {
	source := &countingGetter{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60},
	}}
	repo := NewCachedRepository(source, time.Minute, time.Minute)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	delete(source.services, 1)

	_, err = repo.GetFresh(ctx, 1)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
