package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrPastDate возвращается, когда желаемое время начала уже прошло
	ErrPastDate = errors.New("create_booking: booking start is in the past")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotNotAvailable возвращается, когда желаемое время пересекается с другим заказом
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// EventBookingCreated ключ маршрутизации события о новом заказе
const EventBookingCreated = "booking.created"

// PaymentWarning текст предупреждения, когда заказ создан, но платёж создать не удалось
const PaymentWarning = "заказ создан, но платёж создать не удалось: оплатите заказ позже"
