package payment_webhook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/yookassa"
	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

const msgInvalidNotification = "некорректное уведомление"

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

// Handle POST /api/v1/payments/webhook
// Тело уведомления используется только для поиска заказа, статус перезапрашивается у шлюза
// Ответ не 200 заставляет шлюз повторить уведомление
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Шлюз присылает больше полей, чем описано в модели, поэтому без DisallowUnknownFields
	var notification yookassa.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil || notification.Object.ID == "" {
		h.logger.Warn("POST /payments/webhook - Invalid notification: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotification)
		return
	}

	paymentID := notification.Object.ID

	result, err := h.useCase.Execute(r.Context(), &reconcilePayment.Request{
		PaymentID: paymentID,
		Source:    reconcilePayment.SourceWebhook,
	})
	if err != nil {
		switch {
		case errors.Is(err, reconcilePayment.ErrOrderNotFound):
			// Повтор уведомления не поможет
			h.logger.Warn("POST /payments/webhook - Unknown payment: payment_id=%s, event=%s", paymentID, notification.Event)
			handlers.RespondJSON(w, http.StatusOK, nil)

		default:
			h.logger.Error("POST /payments/webhook - Failed to reconcile: payment_id=%s, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Notification processed: payment_id=%s, event=%s, order_id=%d, status=%s",
		paymentID, notification.Event, result.Order.ID, result.Order.Status)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
