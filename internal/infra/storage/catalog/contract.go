package catalog

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// ServiceGetter источник услуг каталога (репозиторий или кеш поверх него)
type ServiceGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}
