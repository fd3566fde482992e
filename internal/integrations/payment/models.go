package payment

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status статус платежа во внешнем шлюзе
type Status string

const (
	StatusPending           Status = "pending"
	StatusWaitingForCapture Status = "waiting_for_capture"
	StatusSucceeded         Status = "succeeded"
	StatusCanceled          Status = "canceled"
)

// CreateRequest параметры создания платежа
type CreateRequest struct {
	OrderID        int64
	Amount         decimal.Decimal
	Currency       string
	ReturnURL      string
	Description    string
	IdempotencyKey string
}

// Intent созданный платёж
type Intent struct {
	PaymentID   string
	RedirectURL string
}

// idempotencyNamespace пространство имён UUIDv5 для ключей идемпотентности платежей
var idempotencyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("smc-studio-booking/payments"))

// IdempotencyKey ключ идемпотентности платежа заказа
// Для одного заказа всегда один и тот же, поэтому повторное создание вернёт тот же платёж
func IdempotencyKey(orderID int64) string {
	return uuid.NewSHA1(idempotencyNamespace, []byte(strconv.FormatInt(orderID, 10))).String()
}

// OrderDescription описание платежа, которое клиент видит на странице оплаты
func OrderDescription(orderID int64, serviceName string) string {
	return fmt.Sprintf("Заказ #%d: %s", orderID, serviceName)
}
