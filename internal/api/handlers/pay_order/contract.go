package pay_order

import (
	"context"

	payOrder "github.com/m04kA/SMC-StudioBooking/internal/usecase/pay_order"
)

type PayOrderUseCase interface {
	Execute(ctx context.Context, req *payOrder.Request) (*payOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
