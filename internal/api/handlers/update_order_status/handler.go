package update_order_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/orders"
	"github.com/m04kA/SMC-StudioBooking/internal/service/orders/models"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус заказа"
	msgNotFound           = "заказ не найден"
	msgCannotChange       = "отменённый заказ нельзя вернуть"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/status - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Invalid status: order_id=%d, status=%s", orderID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrCannotChangeStatus):
			h.logger.Warn("PATCH /admin/orders/{id}/status - Cancelled order: order_id=%d", orderID)
			handlers.RespondConflict(w, msgCannotChange)

		default:
			h.logger.Error("PATCH /admin/orders/{id}/status - Failed to update status: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/orders/{id}/status - Status updated: order_id=%d, status=%s", orderID, order.Status)
	handlers.RespondJSON(w, http.StatusOK, order)
}
