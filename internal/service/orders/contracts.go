package orders

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.OrderDetails, error)
	GetByClientID(ctx context.Context, clientID int64) ([]*domain.OrderDetails, error)
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.OrderDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	DeleteItems(ctx context.Context, orderID int64) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordStatusTransition(from, to, source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
