package payment_webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *reconcilePayment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *reconcilePayment.Request) (*reconcilePayment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &reconcilePayment.Response{Order: &domain.Order{ID: 1, Status: domain.StatusConfirmed}}, nil
}

const notification = `{
	"type": "notification",
	"event": "payment.succeeded",
	"object": {
		"id": "2d8a1c3e-000f-5000-9000-1b7e2d8f2c11",
		"status": "succeeded",
		"paid": true,
		"amount": {"value": "1500.00", "currency": "RUB"},
		"test": true
	}
}`

func serve(uc ReconcileUseCase, body string) int {
	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body)))
	return w.Code
}

func TestHandle_ReconcilesByPaymentID(t *testing.T) {
	uc := &fakeUseCase{}

	code := serve(uc, notification)

	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "2d8a1c3e-000f-5000-9000-1b7e2d8f2c11", uc.got.PaymentID)
	assert.Equal(t, int64(0), uc.got.OrderID)
	assert.Equal(t, reconcilePayment.SourceWebhook, uc.got.Source)
	assert.Nil(t, uc.got.ClientID)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, `{"object": {}}`))
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, `not json`))

	// неизвестный платеж подтверждается, чтобы шлюз не повторял уведомление
	assert.Equal(t, http.StatusOK, serve(&fakeUseCase{err: reconcilePayment.ErrOrderNotFound}, notification))

	assert.Equal(t, http.StatusInternalServerError, serve(&fakeUseCase{err: reconcilePayment.ErrPaymentGateway}, notification))
}
