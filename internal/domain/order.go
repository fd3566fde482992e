package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// IsValid проверяет, что статус входит в допустимый набор
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order заказ (бронирование студии)
type Order struct {
	ID           int64
	ClientID     int64
	Status       OrderStatus
	BookingStart time.Time
	TotalPrice   decimal.Decimal
	PaymentID    *string // ID платежа во внешнем шлюзе, nil пока платёж не создан
	CreatedAt    time.Time
}

// IsActive заказ занимает студию (любой статус, кроме отменённого)
func (o *Order) IsActive() bool {
	return o.Status != StatusCancelled
}

// HasPayment у заказа есть платёж во внешнем шлюзе
func (o *Order) HasPayment() bool {
	return o.PaymentID != nil && *o.PaymentID != ""
}

// IsOwnedBy заказ принадлежит клиенту
func (o *Order) IsOwnedBy(clientID int64) bool {
	return o.ClientID == clientID
}

// OrderItem позиция заказа
// Цена и длительность фиксируются на момент бронирования
type OrderItem struct {
	ID              int64
	OrderID         int64
	ServiceID       int64
	PriceAtOrder    decimal.Decimal
	DurationMinutes *int // nil у старых записей, созданных до появления снимка длительности
	Quantity        int
}

// OrderDetails заказ вместе с данными услуги для отображения
type OrderDetails struct {
	Order
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
}

// EndTime время окончания заказа
func (d *OrderDetails) EndTime() time.Time {
	return d.BookingStart.Add(time.Duration(d.DurationMinutes) * time.Minute)
}

// BookedInterval занятый интервал студии, кандидат для проверки пересечений
type BookedInterval struct {
	OrderID         int64
	Start           time.Time
	DurationMinutes int // 0, если длительность определить не удалось
}

// OrdersFilter фильтр списка заказов для администратора
type OrdersFilter struct {
	Status *OrderStatus // Фильтр по статусу (опционально)
	Limit  uint64       // 0 = без ограничения
	Offset uint64
}
