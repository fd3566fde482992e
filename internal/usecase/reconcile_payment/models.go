package reconcile_payment

import "github.com/m04kA/SMC-StudioBooking/internal/domain"

// Источники смены статуса для метрик и событий
const (
	SourceClient     = "client"
	SourceWebhook    = "webhook"
	SourceReconciler = "reconciler"
)

// Request запрос на сверку статуса оплаты
// Заказ ищется по OrderID, а если он не задан, по PaymentID
type Request struct {
	OrderID   int64
	PaymentID string
	ClientID  *int64 // Если задан, заказ должен принадлежать этому клиенту
	Source    string
}

// Response результат сверки
type Response struct {
	Order         *domain.Order
	PaymentStatus string // Пусто, если у заказа нет платежа
	Changed       bool   // Статус заказа изменился
}
