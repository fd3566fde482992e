package list_orders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/service/orders"
	"github.com/m04kA/SMC-StudioBooking/internal/service/orders/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.ListOrdersRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderListResponse{Orders: []models.OrderResponse{}}, nil
}

func serve(svc OrderService, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_ParsesFilter(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "/api/v1/admin/orders?status=pending&limit=20&offset=40")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "pending", *svc.got.Status)
	assert.Equal(t, uint64(20), svc.got.Limit)
	assert.Equal(t, uint64(40), svc.got.Offset)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/admin/orders?limit=-1").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: orders.ErrInvalidInput}, "/api/v1/admin/orders?status=x").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: orders.ErrInternal}, "/api/v1/admin/orders").Code)
}
