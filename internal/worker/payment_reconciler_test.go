package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	orders []*domain.Order
	err    error
	limit  uint64
}

func (f *fakeRepo) GetPendingWithPayment(_ context.Context, limit uint64) ([]*domain.Order, error) {
	f.limit = limit
	return f.orders, f.err
}

type fakeUseCase struct {
	failFor map[int64]bool
	mu      sync.Mutex
	seen    []*reconcilePayment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *reconcilePayment.Request) (*reconcilePayment.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, req)
	if f.failFor[req.OrderID] {
		return nil, reconcilePayment.ErrPaymentGateway
	}
	return &reconcilePayment.Response{Order: &domain.Order{ID: req.OrderID}, Changed: true}, nil
}

func (f *fakeUseCase) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *fakeMetrics) RecordReconcilerRun(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func newReconciler(t *testing.T, repo *fakeRepo, uc *fakeUseCase, metrics *fakeMetrics) *PaymentReconciler {
	p, err := NewPaymentReconciler(repo, uc, PaymentReconcilerConfig{BatchSize: 50, PollInterval: 10 * time.Millisecond}, metrics, nopLogger{})
	require.NoError(t, err)
	return p
}

func TestNewPaymentReconciler_InvalidConfig(t *testing.T) {
	_, err := NewPaymentReconciler(&fakeRepo{}, &fakeUseCase{}, PaymentReconcilerConfig{PollInterval: time.Second}, &fakeMetrics{}, nopLogger{})
	assert.Error(t, err)

	_, err = NewPaymentReconciler(&fakeRepo{}, &fakeUseCase{}, PaymentReconcilerConfig{BatchSize: 1}, &fakeMetrics{}, nopLogger{})
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	repo := &fakeRepo{orders: []*domain.Order{{ID: 1}, {ID: 2}, {ID: 3}}}
	uc := &fakeUseCase{failFor: map[int64]bool{2: true}}
	p := newReconciler(t, repo, uc, &fakeMetrics{})

	result := p.RunOnce(context.Background())

	assert.Equal(t, RunResultPartial, result)
	assert.Equal(t, uint64(50), repo.limit)
	require.Len(t, uc.seen, 3)
	for _, req := range uc.seen {
		assert.Equal(t, reconcilePayment.SourceReconciler, req.Source)
		assert.Nil(t, req.ClientID)
	}
}

func TestRunOnce_Results(t *testing.T) {
	ctx := context.Background()

	p := newReconciler(t, &fakeRepo{}, &fakeUseCase{}, &fakeMetrics{})
	assert.Equal(t, RunResultOK, p.RunOnce(ctx))

	p = newReconciler(t, &fakeRepo{err: errors.New("db down")}, &fakeUseCase{}, &fakeMetrics{})
	assert.Equal(t, RunResultError, p.RunOnce(ctx))

	p = newReconciler(t, &fakeRepo{orders: []*domain.Order{{ID: 1}}}, &fakeUseCase{failFor: map[int64]bool{1: true}}, &fakeMetrics{})
	assert.Equal(t, RunResultError, p.RunOnce(ctx))
}

func TestStart_StopsOnCancel(t *testing.T) {
	uc := &fakeUseCase{}
	metrics := &fakeMetrics{}
	p := newReconciler(t, &fakeRepo{orders: []*domain.Order{{ID: 1}}}, uc, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return uc.calls() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}
