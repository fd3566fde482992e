package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID int64  `json:"serviceId" validate:"required,gt=0"`
	Start     string `json:"start" validate:"required"` // "2024-01-10T10:00:00"
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	Status          string  `json:"status"`
	BookingStart    string  `json:"bookingStart"`
	BookingEnd      string  `json:"bookingEnd"`
	DurationMinutes int     `json:"durationMinutes"`
	TotalPrice      string  `json:"totalPrice"`
	PaymentID       *string `json:"paymentId,omitempty"`
	PaymentURL      *string `json:"paymentUrl,omitempty"`
	PaymentWarning  *string `json:"paymentWarning,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	start, err := handlers.ParseDateTime(r.Start)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:  clientID,
		ServiceID: r.ServiceID,
		Start:     start,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *OrderResponse {
	return &OrderResponse{
		ID:              resp.OrderID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Status:          resp.Status,
		BookingStart:    resp.BookingStart.Format(domain.DateTimeFormat),
		BookingEnd:      resp.BookingEnd.Format(domain.DateTimeFormat),
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice.StringFixed(2),
		PaymentID:       resp.PaymentID,
		PaymentURL:      resp.PaymentURL,
		PaymentWarning:  resp.PaymentWarning,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
