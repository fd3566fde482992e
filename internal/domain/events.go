package domain

import "time"

// EventStatusChanged ключ маршрутизации события о смене статуса заказа
const EventStatusChanged = "order.status_changed"

// StatusChangedEvent событие о смене статуса заказа
type StatusChangedEvent struct {
	OrderID   int64     `json:"orderId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Source    string    `json:"source"`
	ChangedAt time.Time `json:"changedAt"`
}

// NewStatusChangedEvent строит событие о смене статуса
func NewStatusChangedEvent(orderID int64, from, to OrderStatus, source string, at time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		OrderID:   orderID,
		From:      string(from),
		To:        string(to),
		Source:    source,
		ChangedAt: at,
	}
}
