package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalogRepo  CatalogRepository
	orderRepo    OrderRepository
	gateway      PaymentGateway
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	checker      OverlapChecker
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	orderRepo OrderRepository,
	gateway PaymentGateway,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.DefaultDurationMinutes <= 0 {
		cfg.DefaultDurationMinutes = domain.DefaultDurationMinutes
	}
	if cfg.Currency == "" {
		cfg.Currency = domain.DefaultCurrency
	}

	return &UseCase{
		catalogRepo:  catalogRepo,
		orderRepo:    orderRepo,
		gateway:      gateway,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		checker:      NewOverlapChecker(cfg.DefaultDurationMinutes),
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и запись заказа выполняются в сериализуемой транзакции
// под advisory-блокировками дней окна, поэтому два запроса на одно время не пройдут одновременно.
// Платёж создается после фиксации транзакции: его ошибка не откатывает заказ.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, service=%d, start=%s",
		req.ClientID, req.ServiceID, req.Start.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем услугу (можно из кеша), чтобы не открывать транзакцию для несуществующей услуги
	if _, err := uc.catalogRepo.GetByID(ctx, req.ServiceID); err != nil {
		return nil, uc.serviceError(req.ServiceID, err)
	}

	var (
		created  *domain.Order
		service  *domain.Service
		duration int
	)

	// 3. Проверка пересечений и запись заказа в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Перечитываем услугу мимо кеша: в заказ попадают цена и длительность на момент бронирования
		fresh, err := uc.catalogRepo.GetFresh(txCtx, req.ServiceID)
		if err != nil {
			return uc.serviceError(req.ServiceID, err)
		}
		service = fresh

		duration = service.DurationMinutes
		if duration <= 0 {
			duration = uc.cfg.DefaultDurationMinutes
		}

		// 3.2. Окно назад не короче самого длинного заказа, который может пересечься с желаемым временем
		longest, err := uc.orderRepo.GetLongestDuration(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get longest duration: %v", err)
			return fmt.Errorf("%w: failed to get longest duration: %w", ErrInternal, err)
		}
		from, to := searchWindow(req.Start, duration,
			lookBehind(uc.cfg.WindowRadius, longest, uc.cfg.DefaultDurationMinutes))

		// 3.3. Блокируем дни окна, чтобы конкурирующие бронирования шли по очереди
		if err := uc.orderRepo.LockWindow(txCtx, from, to); err != nil {
			uc.logger.Error("CreateBooking: failed to lock window: %v", err)
			return fmt.Errorf("%w: failed to lock window: %w", ErrInternal, err)
		}

		// 3.4. Получаем неотменённые заказы окна с блокировкой строк
		candidates, err := uc.orderRepo.GetByWindow(txCtx, from, to, domain.StatusCancelled)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get orders in window: %v", err)
			return fmt.Errorf("%w: failed to get orders in window: %w", ErrInternal, err)
		}

		// 3.5. Проверяем пересечения
		if conflict, found := uc.checker.FindConflict(req.Start, duration, candidates); found {
			uc.logger.Warn("CreateBooking: slot %s (%d min) overlaps order id=%d",
				req.Start.Format(domain.DateTimeFormat), duration, conflict.OrderID)
			return ErrSlotNotAvailable
		}

		// 3.6. Создаем заказ
		order, err := uc.orderRepo.Create(txCtx, &domain.Order{
			ClientID:     req.ClientID,
			Status:       domain.StatusPending,
			BookingStart: req.Start,
			TotalPrice:   service.Price,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %w", ErrInternal, err)
		}

		// 3.7. Создаем позицию со снимком цены и длительности
		_, err = uc.orderRepo.CreateItem(txCtx, &domain.OrderItem{
			OrderID:         order.ID,
			ServiceID:       service.ID,
			PriceAtOrder:    service.Price,
			DurationMinutes: ptr.Ptr(duration),
			Quantity:        1,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create order item: %v", err)
			return fmt.Errorf("%w: failed to create order item: %w", ErrInternal, err)
		}

		created = order
		return nil
	})

	if err != nil {
		// Повторы исчерпаны: каждая попытка проиграла конкурирующему бронированию того же окна
		if txmanager.IsRetryable(err) {
			uc.logger.Warn("CreateBooking: retries exhausted for slot %s: %v",
				req.Start.Format(domain.DateTimeFormat), err)
			err = fmt.Errorf("%w: concurrent booking in the same window: %v", ErrSlotNotAvailable, err)
		}

		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.metrics.RecordBookingConflict()
			return nil, err
		case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrInternal):
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.metrics.RecordBookingCreated()
	uc.logger.Info("CreateBooking: successfully created order id=%d", created.ID)

	response := &Response{
		OrderID:         created.ID,
		ClientID:        created.ClientID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		Status:          string(created.Status),
		BookingStart:    created.BookingStart,
		BookingEnd:      created.BookingStart.Add(minutes(duration)),
		DurationMinutes: duration,
		TotalPrice:      created.TotalPrice,
		CreatedAt:       created.CreatedAt,
	}

	// 4. Создаем платёж (ошибка не откатывает заказ)
	uc.attachPayment(ctx, created, service, response)

	// 5. Публикуем событие
	uc.publishCreated(ctx, response)

	return response, nil
}

// attachPayment создает платёж с ограничением по времени и сохраняет его ID в заказе
// При любой ошибке заказ остаётся в статусе pending без платежа, в ответ пишется предупреждение
func (uc *UseCase) attachPayment(ctx context.Context, order *domain.Order, service *domain.Service, response *Response) {
	payCtx := ctx
	if uc.cfg.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(ctx, uc.cfg.PaymentTimeout)
		defer cancel()
	}

	intent, err := uc.gateway.CreatePayment(payCtx, &payment.CreateRequest{
		OrderID:        order.ID,
		Amount:         order.TotalPrice,
		Currency:       uc.cfg.Currency,
		ReturnURL:      uc.cfg.ReturnURL,
		Description:    payment.OrderDescription(order.ID, service.Name),
		IdempotencyKey: payment.IdempotencyKey(order.ID),
	})
	if err != nil {
		if !errors.Is(err, payment.ErrDisabled) {
			uc.metrics.RecordPaymentFailure("create")
		}
		uc.logger.Warn("CreateBooking: payment for order id=%d was not created: %v", order.ID, err)
		response.PaymentWarning = ptr.Ptr(PaymentWarning)
		return
	}

	if err := uc.orderRepo.SetPaymentID(ctx, order.ID, intent.PaymentID); err != nil {
		// Повторная попытка оплаты вернёт тот же платёж по ключу идемпотентности
		uc.logger.Error("CreateBooking: failed to save payment id=%s for order id=%d: %v",
			intent.PaymentID, order.ID, err)
		response.PaymentWarning = ptr.Ptr(PaymentWarning)
		return
	}

	uc.logger.Info("CreateBooking: payment id=%s attached to order id=%d", intent.PaymentID, order.ID)
	response.PaymentID = ptr.Ptr(intent.PaymentID)
	if intent.RedirectURL != "" {
		response.PaymentURL = ptr.Ptr(intent.RedirectURL)
	}
}

func (uc *UseCase) serviceError(serviceID int64, err error) error {
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
		return ErrServiceNotFound
	}
	uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
	return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
}

func (uc *UseCase) publishCreated(ctx context.Context, response *Response) {
	event := BookingCreatedEvent{
		OrderID:    response.OrderID,
		ClientID:   response.ClientID,
		ServiceID:  response.ServiceID,
		Start:      response.BookingStart,
		End:        response.BookingEnd,
		TotalPrice: response.TotalPrice.StringFixed(2),
	}
	if err := uc.publisher.PublishJSON(ctx, EventBookingCreated, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for order id=%d: %v", EventBookingCreated, response.OrderID, err)
	}
}
