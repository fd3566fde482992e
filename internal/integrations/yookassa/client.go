package yookassa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры подключения к ЮKassa
type Config struct {
	BaseURL   string
	ShopID    string
	SecretKey string
	Timeout   time.Duration
}

// Client клиент для работы с API ЮKassa
// Учетные данные задаются один раз при создании и не меняются между вызовами
type Client struct {
	baseURL    string
	shopID     string
	secretKey  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ЮKassa
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		shopID:    cfg.ShopID,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// CreatePayment создает платёж
// idempotencyKey передаётся в заголовке Idempotence-Key: повтор с тем же ключом вернёт тот же платёж
func (c *Client) CreatePayment(ctx context.Context, req *CreatePaymentRequest, idempotencyKey string) (*Payment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Idempotence-Key", idempotencyKey)

	payment, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	c.log.Info("YooKassa: payment id=%s created, status=%s", payment.ID, payment.Status)
	return payment, nil
}

// GetPayment получает платёж по ID
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) (*Payment, error) {
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.shopID, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	default:
		var apiErr ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Code != "" {
			return nil, fmt.Errorf("%w: status %d, code=%s: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Code, apiErr.Description)
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if payment.ID == "" {
		return nil, fmt.Errorf("%w: payment id is empty", ErrInvalidResponse)
	}

	return &payment, nil
}
