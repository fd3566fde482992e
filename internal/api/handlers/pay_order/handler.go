package pay_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	payOrder "github.com/m04kA/SMC-StudioBooking/internal/usecase/pay_order"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "заказ не найден"
	msgForbidden      = "доступ запрещен"
	msgNotPayable     = "заказ не ожидает оплаты"
	msgUnavailable    = "приём оплаты временно недоступен"
	msgGatewayFailed  = "не удалось создать платёж, попробуйте позже"
)

type Handler struct {
	useCase PayOrderUseCase
	logger  Logger
}

func NewHandler(useCase PayOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/{orderId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /orders/{id}/payment - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &payOrder.Request{OrderID: orderID}
	// Клиент может оплатить только свой заказ
	if !middleware.GetUserRole(r.Context()).IsAdmin() {
		req.ClientID = &userID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payOrder.ErrOrderNotFound):
			h.logger.Warn("POST /orders/{id}/payment - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payOrder.ErrForbidden):
			h.logger.Warn("POST /orders/{id}/payment - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payOrder.ErrNotPayable):
			h.logger.Warn("POST /orders/{id}/payment - Order is not payable: order_id=%d, error=%v", orderID, err)
			handlers.RespondConflict(w, msgNotPayable)

		case errors.Is(err, payOrder.ErrPaymentUnavailable):
			h.logger.Warn("POST /orders/{id}/payment - Payments disabled: order_id=%d", orderID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		case errors.Is(err, payOrder.ErrPaymentGateway):
			h.logger.Warn("POST /orders/{id}/payment - Gateway failed: order_id=%d, error=%v", orderID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailed)

		default:
			h.logger.Error("POST /orders/{id}/payment - Failed to create payment: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/{id}/payment - Payment ready: order_id=%d, payment_id=%s", orderID, result.PaymentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
