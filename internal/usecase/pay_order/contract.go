package pay_order

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.OrderDetails, error)
	SetPaymentID(ctx context.Context, id int64, paymentID string) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req *payment.CreateRequest) (*payment.Intent, error)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordPaymentFailure(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
