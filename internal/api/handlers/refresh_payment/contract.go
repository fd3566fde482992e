package refresh_payment

import (
	"context"

	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

type ReconcileUseCase interface {
	Execute(ctx context.Context, req *reconcilePayment.Request) (*reconcilePayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
