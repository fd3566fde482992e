package domain

import "github.com/shopspring/decimal"

// Service услуга каталога студии
type Service struct {
	ID              int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	CategoryID      *int64
}
