package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	orderRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/order"
	"github.com/m04kA/SMC-StudioBooking/internal/service/orders/models"
)

// SourceAdmin источник смены статуса для метрик и событий
const SourceAdmin = "admin"

// Service сервис для чтения заказов и администрирования
type Service struct {
	orderRepo       OrderRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	defaultDuration int
	logger          Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	defaultDurationMinutes int,
	logger Logger,
) *Service {
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = domain.DefaultDurationMinutes
	}
	return &Service{
		orderRepo:       orderRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		defaultDuration: defaultDurationMinutes,
		logger:          logger,
	}
}

// GetByID получает заказ по ID
// Клиент видит только свой заказ, администратор любой
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.Role) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d", id, userID)

	details, err := s.orderRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !role.IsAdmin() && !details.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to order id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.applyDefaultDuration(details)

	s.logger.Info("GetByID: successfully fetched order id=%d", id)
	return models.FromDomainOrder(details), nil
}

// GetClientOrders получает историю заказов клиента, сначала поздние по времени съёмки
// Клиент может запросить только свою историю
func (s *Service) GetClientOrders(ctx context.Context, clientID int64, userID int64, role domain.Role) (*models.OrderListResponse, error) {
	s.logger.Info("GetClientOrders: fetching orders for client=%d by user=%d", clientID, userID)

	if !role.IsAdmin() && clientID != userID {
		s.logger.Warn("GetClientOrders: access denied for user=%d to client=%d", userID, clientID)
		return nil, ErrAccessDenied
	}

	list, err := s.orderRepo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientOrders: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientOrders - repository error: %v", ErrInternal, err)
	}

	for _, d := range list {
		s.applyDefaultDuration(d)
	}

	s.logger.Info("GetClientOrders: successfully fetched %d orders for client=%d", len(list), clientID)
	return models.FromDomainOrderList(list), nil
}

// List получает заказы для администратора, сначала новые
func (s *Service) List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	if req.Status != nil {
		s.logger.Info("List: fetching orders, status=%s", *req.Status)
	} else {
		s.logger.Info("List: fetching all orders")
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	for _, d := range list {
		s.applyDefaultDuration(d)
	}

	s.logger.Info("List: successfully fetched %d orders", len(list))
	return models.FromDomainOrderList(list), nil
}

// UpdateStatus меняет статус заказа по решению администратора
// Отменённый заказ вернуть нельзя
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("UpdateStatus: order id=%d, status=%s", id, req.Status)

	status, err := models.ToDomainOrderStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for order id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	var from domain.OrderStatus
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		from = order.Status

		if from == status {
			return nil
		}
		if from == domain.StatusCancelled {
			return ErrCannotChangeStatus
		}

		return s.orderRepo.UpdateStatus(ctx, id, status)
	})
	if err != nil {
		switch {
		case errors.Is(err, orderRepo.ErrOrderNotFound):
			s.logger.Warn("UpdateStatus: order id=%d not found", id)
			return nil, ErrOrderNotFound
		case errors.Is(err, ErrCannotChangeStatus):
			s.logger.Warn("UpdateStatus: order id=%d is cancelled, status=%s rejected", id, status)
			return nil, ErrCannotChangeStatus
		default:
			s.logger.Error("UpdateStatus: failed to update order id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - transaction failed: %v", ErrInternal, err)
		}
	}

	if from != status {
		s.onChanged(ctx, id, from, status)
	}

	details, err := s.orderRepo.GetDetailsByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - reload order: %v", ErrInternal, err)
	}
	s.applyDefaultDuration(details)

	s.logger.Info("UpdateStatus: order id=%d is %s", id, details.Status)
	return models.FromDomainOrder(details), nil
}

// Delete удаляет заказ вместе с позициями в одной транзакции
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting order id=%d", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.DeleteItems(ctx, id); err != nil {
			return err
		}
		return s.orderRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("Delete: order id=%d not found", id)
			return ErrOrderNotFound
		}
		s.logger.Error("Delete: failed to delete order id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: order id=%d deleted", id)
	return nil
}

func (s *Service) onChanged(ctx context.Context, id int64, from, to domain.OrderStatus) {
	s.metrics.RecordStatusTransition(string(from), string(to), SourceAdmin)

	event := domain.NewStatusChangedEvent(id, from, to, SourceAdmin, time.Now())
	if err := s.publisher.PublishJSON(ctx, domain.EventStatusChanged, event); err != nil {
		s.logger.Warn("UpdateStatus: failed to publish %s for order id=%d: %v", domain.EventStatusChanged, id, err)
	}
}

// applyDefaultDuration подставляет длительность по умолчанию, если её не удалось определить
func (s *Service) applyDefaultDuration(d *domain.OrderDetails) {
	if d.DurationMinutes <= 0 {
		d.DurationMinutes = s.defaultDuration
	}
}
