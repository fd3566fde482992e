package pay_order

import "time"

// Config параметры создания платежа
type Config struct {
	Currency       string        // Валюта платежа
	ReturnURL      string        // Куда шлюз вернёт клиента после оплаты
	PaymentTimeout time.Duration // Таймаут создания платежа
}

// Request запрос на оплату заказа
type Request struct {
	OrderID  int64
	ClientID *int64 // Если задан, заказ должен принадлежать этому клиенту
}

// Response созданный (или повторно полученный) платёж заказа
type Response struct {
	OrderID    int64
	Status     string
	PaymentID  string
	PaymentURL *string
}
