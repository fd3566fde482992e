package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func doRequest(h *Handler, body string, withUser bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	if withUser {
		r = r.WithContext(middleware.WithUser(r.Context(), 7, domain.RoleClient))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	uc := &fakeUseCase{resp: &createBooking.Response{
		OrderID:         15,
		ClientID:        7,
		ServiceID:       3,
		Status:          "pending",
		BookingStart:    start,
		BookingEnd:      start.Add(time.Hour),
		DurationMinutes: 60,
		TotalPrice:      decimal.RequireFromString("1500"),
		PaymentWarning:  ptr.Ptr(createBooking.PaymentWarning),
	}}
	h := NewHandler(uc, nopLogger{})

	w := doRequest(h, `{"serviceId": 3, "start": "2024-01-10T10:00:00"}`, true)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), uc.got.ClientID)
	assert.True(t, uc.got.Start.Equal(start))

	var body OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(15), body.ID)
	assert.Equal(t, "1500.00", body.TotalPrice)
	assert.Equal(t, "2024-01-10T11:00:00", body.BookingEnd)
	require.NotNil(t, body.PaymentWarning)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		withUser bool
		err      error
		code     int
	}{
		{"no user", `{"serviceId": 3, "start": "2024-01-10T10:00:00"}`, false, nil, http.StatusUnauthorized},
		{"bad json", `{`, true, nil, http.StatusBadRequest},
		{"missing service", `{"start": "2024-01-10T10:00:00"}`, true, nil, http.StatusBadRequest},
		{"bad start", `{"serviceId": 3, "start": "tomorrow"}`, true, nil, http.StatusBadRequest},
		{"conflict", `{"serviceId": 3, "start": "2024-01-10T10:00:00"}`, true, createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"not found", `{"serviceId": 3, "start": "2024-01-10T10:00:00"}`, true, createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"past", `{"serviceId": 3, "start": "2024-01-10T10:00:00"}`, true, fmt.Errorf("%w: start", createBooking.ErrPastDate), http.StatusBadRequest},
		{"internal", `{"serviceId": 3, "start": "2024-01-10T10:00:00"}`, true, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			w := doRequest(h, tt.body, tt.withUser)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}
