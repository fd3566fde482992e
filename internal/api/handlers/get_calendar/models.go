package get_calendar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getCalendar "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_calendar"
)

// EventResponse событие календаря в формате, который понимает виджет календаря
type EventResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
	Color  string `json:"color"`
}

// parseQuery разбирает ?from=&to=, допускаются даты "2024-01-10" и полное время
func parseQuery(q url.Values) (*getCalendar.Request, error) {
	from, err := parseBound(q.Get("from"))
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := parseBound(q.Get("to"))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	return &getCalendar.Request{From: from, To: to}, nil
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("is required")
	}
	if t, err := time.ParseInLocation(domain.DateFormat, s, time.Local); err == nil {
		return t, nil
	}
	return handlers.ParseDateTime(s)
}

// FromUseCaseResponse конвертирует события use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) []EventResponse {
	events := make([]EventResponse, 0, len(resp.Events))
	for _, e := range resp.Events {
		events = append(events, EventResponse{
			ID:     e.OrderID,
			Title:  e.Title,
			Start:  e.Start.Format(domain.DateTimeFormat),
			End:    e.End.Format(domain.DateTimeFormat),
			Status: string(e.Status),
			Color:  e.Color,
		})
	}
	return events
}
