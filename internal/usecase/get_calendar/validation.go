package get_calendar

import (
	"fmt"
	"time"
)

// validateRequest проверяет период календаря
func validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, MaxRangeDays)
	}

	return nil
}
