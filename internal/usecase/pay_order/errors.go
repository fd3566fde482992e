package pay_order

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pay_order: invalid input data")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("pay_order: order not found")

	// ErrForbidden возвращается, когда клиент пытается оплатить чужой заказ
	ErrForbidden = errors.New("pay_order: order belongs to another client")

	// ErrNotPayable возвращается, когда заказ уже не ожидает оплаты
	ErrNotPayable = errors.New("pay_order: order is not pending")

	// ErrPaymentUnavailable возвращается, когда приём оплаты выключен
	ErrPaymentUnavailable = errors.New("pay_order: payments are disabled")

	// ErrPaymentGateway возвращается, когда шлюз не создал платёж; заказ не меняется
	ErrPaymentGateway = errors.New("pay_order: failed to create payment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("pay_order: internal error")
)
