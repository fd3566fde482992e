package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid order status")
)

// Request модели

// ListOrdersRequest запрос списка заказов администратором
type ListOrdersRequest struct {
	Status *string `json:"status,omitempty"`
	Limit  uint64  `json:"limit,omitempty"`
	Offset uint64  `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListOrdersRequest) ToDomainFilter() (domain.OrdersFilter, error) {
	filter := domain.OrdersFilter{
		Limit:  r.Limit,
		Offset: r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainOrderStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса заказа
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	ServiceID       int64     `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
	Status          string    `json:"status"`
	BookingStart    string    `json:"bookingStart"` // "2024-01-10T10:00:00"
	BookingEnd      string    `json:"bookingEnd"`
	DurationMinutes int       `json:"durationMinutes"`
	TotalPrice      string    `json:"totalPrice"` // "1500.00"
	PaymentID       *string   `json:"paymentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// Методы конвертации

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(d *domain.OrderDetails) *OrderResponse {
	if d == nil {
		return nil
	}

	return &OrderResponse{
		ID:              d.ID,
		ClientID:        d.ClientID,
		ServiceID:       d.ServiceID,
		ServiceName:     d.ServiceName,
		Status:          string(d.Status),
		BookingStart:    d.BookingStart.Format(domain.DateTimeFormat),
		BookingEnd:      d.EndTime().Format(domain.DateTimeFormat),
		DurationMinutes: d.DurationMinutes,
		TotalPrice:      d.TotalPrice.StringFixed(2),
		PaymentID:       d.PaymentID,
		CreatedAt:       d.CreatedAt,
	}
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(list []*domain.OrderDetails) *OrderListResponse {
	orders := make([]OrderResponse, 0, len(list))
	for _, d := range list {
		orders = append(orders, *FromDomainOrder(d))
	}
	return &OrderListResponse{Orders: orders}
}

// ToDomainOrderStatus конвертирует строку в статус заказа
func ToDomainOrderStatus(s string) (domain.OrderStatus, error) {
	status := domain.OrderStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
