package handlers

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// ParseDateTime разбирает время из запроса: RFC 3339 или локальное "2006-01-02T15:04:05"
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(domain.DateTimeFormat, s, time.Local)
}
