package update_order_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/internal/service/orders"
	"github.com/m04kA/SMC-StudioBooking/internal/service/orders/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderResponse{ID: id, Status: req.Status}, nil
}

func serve(svc OrderService, path, body string) int {
	router := mux.NewRouter()
	router.HandleFunc("/admin/orders/{orderId}/status", NewHandler(svc, nopLogger{}).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return w.Code
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		err  error
		code int
	}{
		{"ok", "/admin/orders/1/status", `{"status": "completed"}`, nil, http.StatusOK},
		{"bad id", "/admin/orders/x/status", `{"status": "completed"}`, nil, http.StatusBadRequest},
		{"bad body", "/admin/orders/1/status", `status`, nil, http.StatusBadRequest},
		{"unknown status", "/admin/orders/1/status", `{"status": "archived"}`, nil, http.StatusBadRequest},
		{"not found", "/admin/orders/1/status", `{"status": "completed"}`, orders.ErrOrderNotFound, http.StatusNotFound},
		{"cancelled", "/admin/orders/1/status", `{"status": "pending"}`, orders.ErrCannotChangeStatus, http.StatusConflict},
		{"internal", "/admin/orders/1/status", `{"status": "completed"}`, orders.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, serve(&fakeService{err: tt.err}, tt.path, tt.body))
		})
	}
}
