package create_booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeMetrics struct {
	mu              sync.Mutex
	created         int
	conflicts       int
	paymentFailures int
}

func (m *fakeMetrics) RecordBookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *fakeMetrics) RecordBookingConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

func (m *fakeMetrics) RecordPaymentFailure(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentFailures++
}

// memStore хранилище в памяти: каталог и заказы
type memStore struct {
	mu          sync.Mutex
	services    map[int64]*domain.Service
	orders      map[int64]*domain.Order
	items       []domain.OrderItem
	nextOrderID int64
	nextItemID  int64
	lockedDays  int

	failCreateItem error
}

func newMemStore(services ...*domain.Service) *memStore {
	s := &memStore{
		services: make(map[int64]*domain.Service),
		orders:   make(map[int64]*domain.Order),
	}
	for _, svc := range services {
		s.services[svc.ID] = svc
	}
	return s
}

type snapshot struct {
	orders      map[int64]domain.Order
	items       []domain.OrderItem
	nextOrderID int64
	nextItemID  int64
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		orders:      make(map[int64]domain.Order, len(s.orders)),
		items:       append([]domain.OrderItem(nil), s.items...),
		nextOrderID: s.nextOrderID,
		nextItemID:  s.nextItemID,
	}
	for id, o := range s.orders {
		snap.orders[id] = *o
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[int64]*domain.Order, len(snap.orders))
	for id, o := range snap.orders {
		order := o
		s.orders[id] = &order
	}
	s.items = snap.items
	s.nextOrderID = snap.nextOrderID
	s.nextItemID = snap.nextItemID
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *svc
	return &copied, nil
}

func (s *memStore) GetFresh(ctx context.Context, id int64) (*domain.Service, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) setService(svc *domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *memStore) GetLongestDuration(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	longest := 0
	for _, item := range s.items {
		if item.DurationMinutes != nil && *item.DurationMinutes > longest {
			longest = *item.DurationMinutes
		}
	}
	for _, svc := range s.services {
		if svc.DurationMinutes > longest {
			longest = svc.DurationMinutes
		}
	}
	return longest, nil
}

func (s *memStore) LockWindow(_ context.Context, from, to time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockedDays++
	return nil
}

func (s *memStore) GetByWindow(_ context.Context, start, end time.Time, excludeStatus domain.OrderStatus) ([]domain.BookedInterval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.BookedInterval, 0)
	for _, o := range s.orders {
		if o.Status == excludeStatus || o.BookingStart.Before(start) || !o.BookingStart.Before(end) {
			continue
		}
		result = append(result, domain.BookedInterval{
			OrderID:         o.ID,
			Start:           o.BookingStart,
			DurationMinutes: s.durationOf(o.ID),
		})
	}
	return result, nil
}

func (s *memStore) durationOf(orderID int64) int {
	for _, item := range s.items {
		if item.OrderID != orderID {
			continue
		}
		if item.DurationMinutes != nil {
			return *item.DurationMinutes
		}
		if svc, ok := s.services[item.ServiceID]; ok {
			return svc.DurationMinutes
		}
		return 0
	}
	return 0
}

func (s *memStore) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	order.ID = s.nextOrderID
	order.CreatedAt = time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)
	stored := *order
	s.orders[order.ID] = &stored
	return order, nil
}

func (s *memStore) CreateItem(_ context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateItem != nil {
		return nil, s.failCreateItem
	}
	s.nextItemID++
	item.ID = s.nextItemID
	s.items = append(s.items, *item)
	return item, nil
}

func (s *memStore) SetPaymentID(_ context.Context, id int64, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.PaymentID = &paymentID
	return nil
}

// addOrder добавляет существующий заказ (старые записи могут быть без снимка длительности)
func (s *memStore) addOrder(start time.Time, status domain.OrderStatus, serviceID int64, duration *int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	s.nextItemID++
	s.orders[s.nextOrderID] = &domain.Order{ID: s.nextOrderID, ClientID: 99, Status: status, BookingStart: start}
	s.items = append(s.items, domain.OrderItem{
		ID: s.nextItemID, OrderID: s.nextOrderID, ServiceID: serviceID, DurationMinutes: duration, Quantity: 1,
	})
	return s.nextOrderID
}

func (s *memStore) order(id int64) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.orders[id]
}

func (s *memStore) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders), len(s.items)
}

// fakeTxManager выполняет транзакции по одной и откатывает изменения при ошибке
// err, если задан, возвращается вместо выполнения fn (как после исчерпания повторов)
type fakeTxManager struct {
	mu    sync.Mutex
	store *memStore
	err   error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeGateway struct {
	mu       sync.Mutex
	err      error
	delay    time.Duration
	requests []*payment.CreateRequest
}

func (g *fakeGateway) CreatePayment(ctx context.Context, req *payment.CreateRequest) (*payment.Intent, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if g.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.delay):
		}
	}
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Intent{
		PaymentID:   "pay-" + req.IdempotencyKey[:8],
		RedirectURL: "https://pay.example/" + req.IdempotencyKey[:8],
	}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, key)
	return nil
}
