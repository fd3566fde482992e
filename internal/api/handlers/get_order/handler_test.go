package get_order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/orders"
	"github.com/m04kA/SMC-StudioBooking/internal/service/orders/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	role domain.Role
	err  error
}

func (f *fakeService) GetByID(_ context.Context, id int64, _ int64, role domain.Role) (*models.OrderResponse, error) {
	f.role = role
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderResponse{ID: id}, nil
}

func serve(svc OrderService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/orders/{orderId}", NewHandler(svc, nopLogger{}).Handle)

	r := httptest.NewRequest(http.MethodGet, path, nil)
	r = r.WithContext(middleware.WithUser(r.Context(), 7, domain.RoleAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "/orders/15")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.RoleAdmin, svc.role)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/orders/abc").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: orders.ErrOrderNotFound}, "/orders/15").Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: orders.ErrAccessDenied}, "/orders/15").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: orders.ErrInternal}, "/orders/15").Code)
}
