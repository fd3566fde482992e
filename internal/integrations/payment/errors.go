package payment

import "errors"

var (
	// ErrDisabled возвращается, когда приём оплаты выключен в конфигурации
	ErrDisabled = errors.New("payment: gateway is disabled")

	// ErrUnavailable возвращается, когда шлюз недоступен (разомкнут circuit breaker)
	ErrUnavailable = errors.New("payment: gateway is unavailable")

	// ErrPaymentNotFound возвращается, когда платёж не найден в шлюзе
	ErrPaymentNotFound = errors.New("payment: payment not found")

	// ErrGateway возвращается при остальных ошибках шлюза
	ErrGateway = errors.New("payment: gateway error")
)
