package refresh_payment

import (
	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

// PaymentStatusResponse HTTP response model
type PaymentStatusResponse struct {
	OrderID       int64   `json:"orderId"`
	Status        string  `json:"status"`
	PaymentID     *string `json:"paymentId,omitempty"`
	PaymentStatus string  `json:"paymentStatus,omitempty"`
	Changed       bool    `json:"changed"`
}

// FromUseCaseResponse конвертирует результат сверки в HTTP response
func FromUseCaseResponse(resp *reconcilePayment.Response) *PaymentStatusResponse {
	return &PaymentStatusResponse{
		OrderID:       resp.Order.ID,
		Status:        string(resp.Order.Status),
		PaymentID:     resp.Order.PaymentID,
		PaymentStatus: resp.PaymentStatus,
		Changed:       resp.Changed,
	}
}
