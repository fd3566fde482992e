package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/m04kA/SMC-StudioBooking/internal/integrations/yookassa"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// YooKassaClient интерфейс клиента ЮKassa
type YooKassaClient interface {
	CreatePayment(ctx context.Context, req *yookassa.CreatePaymentRequest, idempotencyKey string) (*yookassa.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*yookassa.Payment, error)
}

// BreakerSettings настройки circuit breaker
type BreakerSettings struct {
	// MaxFailures число подряд идущих ошибок, после которого breaker размыкается
	MaxFailures uint32

	// Cooldown время в разомкнутом состоянии до пробного запроса
	Cooldown time.Duration
}

// Gateway платежный шлюз поверх ЮKassa с circuit breaker
type Gateway struct {
	client  YooKassaClient
	breaker *gobreaker.CircuitBreaker
	log     Logger
}

// NewGateway создает платежный шлюз
func NewGateway(client YooKassaClient, settings BreakerSettings, log Logger) *Gateway {
	g := &Gateway{client: client, log: log}

	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "yookassa",
		MaxRequests: 1,
		Timeout:     settings.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		// Отсутствие платежа это ответ шлюза, а не его недоступность
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, yookassa.ErrPaymentNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("PaymentGateway: breaker %s changed state %s -> %s", name, from, to)
		},
	})

	return g
}

// CreatePayment создает платёж и возвращает ссылку на оплату
func (g *Gateway) CreatePayment(ctx context.Context, req *CreateRequest) (*Intent, error) {
	body := &yookassa.CreatePaymentRequest{
		Amount: yookassa.Amount{
			Value:    req.Amount.StringFixed(2),
			Currency: req.Currency,
		},
		Capture: true,
		Confirmation: yookassa.Confirmation{
			Type:      "redirect",
			ReturnURL: req.ReturnURL,
		},
		Description: req.Description,
		Metadata: map[string]string{
			"order_id": strconv.FormatInt(req.OrderID, 10),
		},
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.client.CreatePayment(ctx, body, req.IdempotencyKey)
	})
	if err != nil {
		return nil, g.mapError("CreatePayment", err)
	}

	p := result.(*yookassa.Payment)
	return &Intent{
		PaymentID:   p.ID,
		RedirectURL: p.ConfirmationURL(),
	}, nil
}

// GetPaymentStatus получает текущий статус платежа
func (g *Gateway) GetPaymentStatus(ctx context.Context, paymentID string) (Status, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.client.GetPayment(ctx, paymentID)
	})
	if err != nil {
		return "", g.mapError("GetPaymentStatus", err)
	}

	return Status(result.(*yookassa.Payment).Status), nil
}

func (g *Gateway) mapError(op string, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	case errors.Is(err, yookassa.ErrPaymentNotFound):
		return ErrPaymentNotFound
	default:
		return fmt.Errorf("%w: %s: %w", ErrGateway, op, err)
	}
}

// Disabled шлюз, который используется при выключенной оплате
// Создание платежа всегда завершается ошибкой, заказ остаётся ожидающим оплаты
type Disabled struct{}

// CreatePayment всегда возвращает ErrDisabled
func (Disabled) CreatePayment(context.Context, *CreateRequest) (*Intent, error) {
	return nil, ErrDisabled
}

// GetPaymentStatus всегда возвращает ErrDisabled
func (Disabled) GetPaymentStatus(context.Context, string) (Status, error) {
	return "", ErrDisabled
}
