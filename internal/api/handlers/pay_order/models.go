package pay_order

import (
	payOrder "github.com/m04kA/SMC-StudioBooking/internal/usecase/pay_order"
)

// PaymentResponse HTTP response model
type PaymentResponse struct {
	OrderID    int64   `json:"orderId"`
	Status     string  `json:"status"`
	PaymentID  string  `json:"paymentId"`
	PaymentURL *string `json:"paymentUrl,omitempty"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP response
func FromUseCaseResponse(resp *payOrder.Response) *PaymentResponse {
	return &PaymentResponse{
		OrderID:    resp.OrderID,
		Status:     resp.Status,
		PaymentID:  resp.PaymentID,
		PaymentURL: resp.PaymentURL,
	}
}
