package reconcile_payment

import (
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
)

// targetStatus статус заказа, который соответствует статусу платежа
// false означает, что статус заказа менять не нужно (платёж ещё в процессе)
func targetStatus(status payment.Status) (domain.OrderStatus, bool) {
	switch status {
	case payment.StatusSucceeded:
		return domain.StatusConfirmed, true
	case payment.StatusCanceled:
		return domain.StatusCancelled, true
	default:
		return "", false
	}
}

// canMove можно ли перевести заказ из current в target по результату оплаты
// Завершённый заказ не трогаем; отменённый не подтверждаем, так как его время могли занять
func canMove(current, target domain.OrderStatus) bool {
	switch current {
	case domain.StatusPending:
		return true
	case domain.StatusConfirmed:
		return target == domain.StatusCancelled
	default:
		return false
	}
}
