package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// MaxRangeDays максимальная длина запрашиваемого периода
const MaxRangeDays = 62

// Request запрос событий календаря за период [From, To)
type Request struct {
	From time.Time
	To   time.Time
}

// Response события календаря
type Response struct {
	From   time.Time
	To     time.Time
	Events []domain.CalendarEvent
}
