package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetCalendar(ctx context.Context, from, to time.Time, defaultDurationMinutes int) ([]*domain.OrderDetails, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
