package refresh_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "заказ не найден"
	msgForbidden      = "доступ запрещен"
	msgGatewayFailed  = "не удалось получить статус оплаты, попробуйте позже"
)

type Handler struct {
	useCase ReconcileUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/{orderId}/payment/refresh
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /orders/{id}/payment/refresh - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders/{id}/payment/refresh - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &reconcilePayment.Request{
		OrderID: orderID,
		Source:  reconcilePayment.SourceClient,
	}
	// Клиент может сверить только свой заказ
	if !middleware.GetUserRole(r.Context()).IsAdmin() {
		req.ClientID = &userID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reconcilePayment.ErrOrderNotFound):
			h.logger.Warn("POST /orders/{id}/payment/refresh - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reconcilePayment.ErrForbidden):
			h.logger.Warn("POST /orders/{id}/payment/refresh - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reconcilePayment.ErrPaymentGateway):
			h.logger.Warn("POST /orders/{id}/payment/refresh - Gateway failed: order_id=%d, error=%v", orderID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailed)

		default:
			h.logger.Error("POST /orders/{id}/payment/refresh - Failed to refresh payment: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/{id}/payment/refresh - Payment refreshed: order_id=%d, status=%s, changed=%t",
		orderID, result.Order.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
