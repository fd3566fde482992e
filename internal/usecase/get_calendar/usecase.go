package get_calendar

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// UseCase use case календаря администратора: неотменённые заказы за период
type UseCase struct {
	orderRepo       OrderRepository
	defaultDuration int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orderRepo OrderRepository, defaultDurationMinutes int, logger Logger) *UseCase {
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = domain.DefaultDurationMinutes
	}
	return &UseCase{
		orderRepo:       orderRepo,
		defaultDuration: defaultDurationMinutes,
		logger:          logger,
	}
}

// Execute возвращает события календаря за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: from=%s, to=%s",
		req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	orders, err := uc.orderRepo.GetCalendar(ctx, req.From, req.To, uc.defaultDuration)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get orders: %v", err)
		return nil, fmt.Errorf("%w: failed to get orders: %v", ErrInternal, err)
	}

	events := make([]domain.CalendarEvent, 0, len(orders))
	for _, order := range orders {
		// Отменённые заказы в календарь не попадают
		if !order.IsActive() {
			continue
		}
		if order.DurationMinutes <= 0 {
			order.DurationMinutes = uc.defaultDuration
		}
		events = append(events, domain.NewCalendarEvent(order))
	}

	uc.logger.Info("GetCalendar: %d events", len(events))

	return &Response{
		From:   req.From,
		To:     req.To,
		Events: events,
	}, nil
}
