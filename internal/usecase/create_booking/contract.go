package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
)

// CatalogRepository интерфейс каталога услуг
// GetByID может отдавать значение из кеша, GetFresh читает источник (внутри транзакции через неё)
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetFresh(ctx context.Context, id int64) (*domain.Service, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetLongestDuration(ctx context.Context) (int, error)
	LockWindow(ctx context.Context, from, to time.Time) error
	GetByWindow(ctx context.Context, start, end time.Time, excludeStatus domain.OrderStatus) ([]domain.BookedInterval, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	SetPaymentID(ctx context.Context, id int64, paymentID string) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req *payment.CreateRequest) (*payment.Intent, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordBookingCreated()
	RecordBookingConflict()
	RecordPaymentFailure(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
