package worker

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

// PendingOrderRepository источник заказов, ожидающих подтверждения оплаты
type PendingOrderRepository interface {
	GetPendingWithPayment(ctx context.Context, limit uint64) ([]*domain.Order, error)
}

// ReconcileUseCase сверка статуса одного заказа
type ReconcileUseCase interface {
	Execute(ctx context.Context, req *reconcilePayment.Request) (*reconcilePayment.Response, error)
}

// Metrics интерфейс метрик фоновой сверки
type Metrics interface {
	RecordReconcilerRun(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
