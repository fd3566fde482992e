package yookassa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:   srv.URL,
		ShopID:    "shop",
		SecretKey: "secret",
		Timeout:   time.Second,
	}, nopLogger{})
}

func TestCreatePayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "order-42", r.Header.Get("Idempotence-Key"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "shop", user)
		assert.Equal(t, "secret", pass)

		var req CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "3000.00", req.Amount.Value)
		assert.Equal(t, "redirect", req.Confirmation.Type)

		_ = json.NewEncoder(w).Encode(Payment{
			ID:     "2d0f-01",
			Status: StatusPending,
			Confirmation: &Confirmation{
				Type:            "redirect",
				ConfirmationURL: "https://yoomoney.ru/checkout/2d0f-01",
			},
		})
	})

	payment, err := client.CreatePayment(context.Background(), &CreatePaymentRequest{
		Amount:       Amount{Value: "3000.00", Currency: "RUB"},
		Capture:      true,
		Confirmation: Confirmation{Type: "redirect", ReturnURL: "https://studio.example/orders"},
	}, "order-42")

	require.NoError(t, err)
	assert.Equal(t, "2d0f-01", payment.ID)
	assert.Equal(t, "https://yoomoney.ru/checkout/2d0f-01", payment.ConfirmationURL())
}

func TestGetPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/2d0f-01", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Payment{ID: "2d0f-01", Status: StatusSucceeded, Paid: true})
	})

	payment, err := client.GetPayment(context.Background(), "2d0f-01")

	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, payment.Status)
}

func TestGetPayment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{}`, ErrPaymentNotFound},
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrUnauthorized},
		{"api error", http.StatusBadRequest, `{"type":"error","code":"invalid_request","description":"bad"}`, ErrInvalidResponse},
		{"server error", http.StatusInternalServerError, `oops`, ErrInvalidResponse},
		{"empty id", http.StatusOK, `{"status":"pending"}`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetPayment(context.Background(), "x")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPayment_ContextTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetPayment(ctx, "x")
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
