package domain

import (
	"fmt"
	"time"
)

// CalendarEvent событие календаря администратора
type CalendarEvent struct {
	OrderID int64
	Title   string
	Start   time.Time
	End     time.Time
	Status  OrderStatus
	Color   string
}

// NewCalendarEvent строит событие календаря по заказу
func NewCalendarEvent(d *OrderDetails) CalendarEvent {
	return CalendarEvent{
		OrderID: d.ID,
		Title:   fmt.Sprintf("#%d %s", d.ID, d.ServiceName),
		Start:   d.BookingStart,
		End:     d.EndTime(),
		Status:  d.Status,
		Color:   StatusColor(d.Status),
	}
}

// StatusColor цвет события по статусу
func StatusColor(status OrderStatus) string {
	switch status {
	case StatusPending:
		return ColorPending
	case StatusConfirmed:
		return ColorConfirmed
	case StatusCompleted:
		return ColorCompleted
	default:
		return ColorDefault
	}
}
