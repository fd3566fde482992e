package reconcile_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reconcile_payment: invalid input data")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("reconcile_payment: order not found")

	// ErrForbidden возвращается, когда клиент пытается сверить чужой заказ
	ErrForbidden = errors.New("reconcile_payment: order belongs to another client")

	// ErrPaymentGateway возвращается, когда не удалось получить статус платежа; заказ не меняется
	ErrPaymentGateway = errors.New("reconcile_payment: failed to get payment status")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reconcile_payment: internal error")
)
