package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config параметры бронирования
type Config struct {
	WindowRadius           time.Duration // Радиус окна поиска пересечений вокруг желаемого начала
	DefaultDurationMinutes int           // Длительность заказа, если её не удалось определить
	Currency               string        // Валюта платежа
	ReturnURL              string        // Куда шлюз вернёт клиента после оплаты
	PaymentTimeout         time.Duration // Таймаут создания платежа
}

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64     // ID клиента (из заголовка X-User-ID)
	ServiceID int64     // ID услуги
	Start     time.Time // Желаемое время начала съёмки
}

// Response модель ответа с созданным заказом
type Response struct {
	OrderID         int64
	ClientID        int64
	ServiceID       int64
	ServiceName     string
	Status          string
	BookingStart    time.Time
	BookingEnd      time.Time
	DurationMinutes int
	TotalPrice      decimal.Decimal
	PaymentID       *string // ID платежа, если его удалось создать
	PaymentURL      *string // Ссылка на оплату
	PaymentWarning  *string // Заполняется, если платёж создать не удалось
	CreatedAt       time.Time
}

// BookingCreatedEvent событие о новом заказе
type BookingCreatedEvent struct {
	OrderID    int64     `json:"orderId"`
	ClientID   int64     `json:"clientId"`
	ServiceID  int64     `json:"serviceId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	TotalPrice string    `json:"totalPrice"`
}
