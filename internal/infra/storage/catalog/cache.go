package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// CachedRepository кеширует услуги каталога в памяти на ttl
// Отсутствующие услуги не кешируются, чтобы новая услуга была доступна сразу
type CachedRepository struct {
	next  ServiceGetter
	cache *cache.Cache
}

// NewCachedRepository оборачивает источник услуг кешем
func NewCachedRepository(next ServiceGetter, ttl, cleanupInterval time.Duration) *CachedRepository {
	return &CachedRepository{
		next:  next,
		cache: cache.New(ttl, cleanupInterval),
	}
}

// GetByID возвращает услугу из кеша или из источника
func (c *CachedRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	key := strconv.FormatInt(id, 10)

	if cached, ok := c.cache.Get(key); ok {
		service := *cached.(*domain.Service)
		return &service, nil
	}

	service, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored := *service
	c.cache.SetDefault(key, &stored)

	return service, nil
}

// GetFresh читает услугу из источника мимо кеша и обновляет кеш
// Внутри транзакции чтение идёт через неё, поэтому цена и длительность соответствуют моменту бронирования
func (c *CachedRepository) GetFresh(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := c.next.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			c.Invalidate(id)
		}
		return nil, err
	}

	stored := *service
	c.cache.SetDefault(strconv.FormatInt(id, 10), &stored)

	return service, nil
}

// Invalidate удаляет услугу из кеша
func (c *CachedRepository) Invalidate(id int64) {
	c.cache.Delete(strconv.FormatInt(id, 10))
}
