package domain

// Значения по умолчанию
const (
	// DefaultDurationMinutes длительность заказа, у которого не удалось определить услугу
	// Совпадает с поведением старых данных, где длительность не сохранялась
	DefaultDurationMinutes = 60

	// DefaultWindowRadiusMinutes радиус окна поиска пересечений (5 часов)
	DefaultWindowRadiusMinutes = 300

	// DefaultCurrency валюта платежей
	DefaultCurrency = "RUB"
)

// Форматы времени
const (
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // локальное время без зоны
)

// Цвета событий календаря по статусу заказа
const (
	ColorPending   = "#ffc107"
	ColorConfirmed = "#198754"
	ColorCompleted = "#0d6efd"
	ColorDefault   = "#6c757d"
)

// ActiveStatuses статусы заказов, которые занимают студию
var ActiveStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
