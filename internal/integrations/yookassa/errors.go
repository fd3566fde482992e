package yookassa

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("yookassa client: payment not found")

	// ErrUnauthorized возвращается при неверных shop_id или secret_key
	ErrUnauthorized = errors.New("yookassa client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("yookassa client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от ЮKassa
	ErrInvalidResponse = errors.New("yookassa client: invalid response")
)
