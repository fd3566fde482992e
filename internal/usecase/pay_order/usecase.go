package pay_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	orderRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/order"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

// UseCase use case оплаты заказа, для которого платёж не был создан при бронировании
type UseCase struct {
	orderRepo OrderRepository
	gateway   PaymentGateway
	metrics   Metrics
	cfg       Config
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	gateway PaymentGateway,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Currency == "" {
		cfg.Currency = domain.DefaultCurrency
	}

	return &UseCase{
		orderRepo: orderRepo,
		gateway:   gateway,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}
}

// Execute создает платёж для заказа в статусе pending
// Ключ идемпотентности тот же, что при бронировании, поэтому шлюз вернёт уже созданный платёж, если он есть
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.OrderID <= 0 {
		return nil, fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	// 1. Получаем заказ
	order, err := uc.orderRepo.GetDetailsByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("PayOrder: order id=%d not found", req.OrderID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("PayOrder: failed to get order id=%d: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}

	if req.ClientID != nil && !order.IsOwnedBy(*req.ClientID) {
		uc.logger.Warn("PayOrder: client=%d is not the owner of order id=%d", *req.ClientID, order.ID)
		return nil, ErrForbidden
	}

	// 2. Оплатить можно только ожидающий заказ
	if order.Status != domain.StatusPending {
		uc.logger.Warn("PayOrder: order id=%d has status %s", order.ID, order.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrNotPayable, order.Status)
	}

	// 3. Создаем платёж
	intent, err := uc.createPayment(ctx, order)
	if err != nil {
		if errors.Is(err, payment.ErrDisabled) {
			uc.logger.Warn("PayOrder: payments are disabled, order id=%d", order.ID)
			return nil, ErrPaymentUnavailable
		}
		uc.metrics.RecordPaymentFailure("create")
		uc.logger.Warn("PayOrder: payment for order id=%d was not created: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrPaymentGateway, err)
	}

	// 4. Сохраняем ID платежа, если он новый
	if ptr.Value(order.PaymentID) != intent.PaymentID {
		if err := uc.orderRepo.SetPaymentID(ctx, order.ID, intent.PaymentID); err != nil {
			uc.logger.Error("PayOrder: failed to save payment id=%s for order id=%d: %v", intent.PaymentID, order.ID, err)
			return nil, fmt.Errorf("%w: failed to save payment id: %v", ErrInternal, err)
		}
		uc.logger.Info("PayOrder: payment id=%s attached to order id=%d (previous=%q)",
			intent.PaymentID, order.ID, ptr.Value(order.PaymentID))
	}

	response := &Response{
		OrderID:   order.ID,
		Status:    string(order.Status),
		PaymentID: intent.PaymentID,
	}
	if intent.RedirectURL != "" {
		response.PaymentURL = ptr.Ptr(intent.RedirectURL)
	}

	return response, nil
}

func (uc *UseCase) createPayment(ctx context.Context, order *domain.OrderDetails) (*payment.Intent, error) {
	if uc.cfg.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.PaymentTimeout)
		defer cancel()
	}

	return uc.gateway.CreatePayment(ctx, &payment.CreateRequest{
		OrderID:        order.ID,
		Amount:         order.TotalPrice,
		Currency:       uc.cfg.Currency,
		ReturnURL:      uc.cfg.ReturnURL,
		Description:    payment.OrderDescription(order.ID, order.ServiceName),
		IdempotencyKey: payment.IdempotencyKey(order.ID),
	})
}
