package reconcile_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	orderRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/order"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
)

// UseCase use case сверки статуса заказа со статусом платежа
type UseCase struct {
	orderRepo      OrderRepository
	gateway        PaymentGateway
	publisher      EventPublisher
	txManager      TransactionManager
	metrics        Metrics
	gatewayTimeout time.Duration
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	gateway PaymentGateway,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	gatewayTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:      orderRepo,
		gateway:        gateway,
		publisher:      publisher,
		txManager:      txManager,
		metrics:        metrics,
		gatewayTimeout: gatewayTimeout,
		logger:         logger,
	}
}

// Execute сверяет статус заказа со статусом платежа в шлюзе
// Заказ без платежа возвращается без изменений. Ошибка шлюза возвращается вызывающему, заказ не меняется.
// Повторный вызов с тем же статусом платежа ничего не записывает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.OrderID <= 0 && req.PaymentID == "" {
		return nil, fmt.Errorf("%w: orderID or paymentID is required", ErrInvalidInput)
	}

	// 1. Получаем заказ
	order, err := uc.findOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil && !order.IsOwnedBy(*req.ClientID) {
		uc.logger.Warn("ReconcilePayment: client=%d is not the owner of order id=%d", *req.ClientID, order.ID)
		return nil, ErrForbidden
	}

	// 2. Без платежа сверять нечего
	if !order.HasPayment() {
		uc.logger.Info("ReconcilePayment: order id=%d has no payment, nothing to do", order.ID)
		return &Response{Order: order}, nil
	}

	// 3. Запрашиваем статус платежа
	status, err := uc.paymentStatus(ctx, *order.PaymentID)
	if err != nil {
		uc.metrics.RecordPaymentFailure("status")
		uc.logger.Warn("ReconcilePayment: failed to get status of payment id=%s for order id=%d: %v",
			*order.PaymentID, order.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrPaymentGateway, err)
	}

	response := &Response{Order: order, PaymentStatus: string(status)}

	target, ok := targetStatus(status)
	if !ok {
		uc.logger.Info("ReconcilePayment: payment id=%s is %s, order id=%d stays %s",
			*order.PaymentID, status, order.ID, order.Status)
		return response, nil
	}

	// 4. Меняем статус, перечитав заказ под блокировкой
	var from domain.OrderStatus
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.orderRepo.GetByID(txCtx, order.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload order: %w", ErrInternal, err)
		}
		response.Order = current

		if current.Status == target {
			return nil
		}
		if !canMove(current.Status, target) {
			uc.logger.Warn("ReconcilePayment: order id=%d is %s, payment %s ignored",
				current.ID, current.Status, status)
			return nil
		}

		if err := uc.orderRepo.UpdateStatus(txCtx, current.ID, target); err != nil {
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		from = current.Status
		current.Status = target
		response.Changed = true
		return nil
	})
	if err != nil {
		uc.logger.Error("ReconcilePayment: order id=%d: %v", order.ID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	if response.Changed {
		uc.onChanged(ctx, order.ID, from, target, req.Source)
	}

	return response, nil
}

func (uc *UseCase) findOrder(ctx context.Context, req *Request) (*domain.Order, error) {
	var (
		order *domain.Order
		err   error
	)
	if req.OrderID > 0 {
		order, err = uc.orderRepo.GetByID(ctx, req.OrderID)
	} else {
		order, err = uc.orderRepo.GetByPaymentID(ctx, req.PaymentID)
	}

	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("ReconcilePayment: order not found (id=%d, payment=%s)", req.OrderID, req.PaymentID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("ReconcilePayment: failed to get order: %v", err)
		return nil, fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}
	return order, nil
}

func (uc *UseCase) paymentStatus(ctx context.Context, paymentID string) (payment.Status, error) {
	if uc.gatewayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.gatewayTimeout)
		defer cancel()
	}
	return uc.gateway.GetPaymentStatus(ctx, paymentID)
}

func (uc *UseCase) onChanged(ctx context.Context, orderID int64, from, to domain.OrderStatus, source string) {
	uc.logger.Info("ReconcilePayment: order id=%d moved %s -> %s (%s)", orderID, from, to, source)
	uc.metrics.RecordStatusTransition(string(from), string(to), source)

	event := domain.NewStatusChangedEvent(orderID, from, to, source, time.Now())
	if err := uc.publisher.PublishJSON(ctx, domain.EventStatusChanged, event); err != nil {
		uc.logger.Warn("ReconcilePayment: failed to publish %s for order id=%d: %v", domain.EventStatusChanged, orderID, err)
	}
}
