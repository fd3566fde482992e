package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, которые перекрывают значения из файла
const EnvPrefix = "STUDIO"

var (
	// ErrLoadConfig ошибка чтения или разбора файла конфигурации
	ErrLoadConfig = errors.New("config: failed to load config")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Booking    BookingConfig    `toml:"booking"`
	Payment    PaymentConfig    `toml:"payment"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Events     EventsConfig     `toml:"events"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Reconciler ReconcilerConfig `toml:"reconciler"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MaxTxRetries    int    `toml:"max_tx_retries"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	// WindowRadiusMinutes радиус окна поиска пересекающихся заказов вокруг желаемого начала
	WindowRadiusMinutes int `toml:"window_radius_minutes"`

	// DefaultDurationMinutes длительность заказа, если её не удалось определить
	DefaultDurationMinutes int `toml:"default_duration_minutes"`

	Currency string `toml:"currency"`
}

// WindowRadius радиус окна как time.Duration
func (c BookingConfig) WindowRadius() time.Duration {
	return time.Duration(c.WindowRadiusMinutes) * time.Minute
}

// PaymentConfig настройки платежного шлюза (ЮKassa)
type PaymentConfig struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"base_url"`
	ShopID    string `toml:"shop_id"`
	SecretKey string `toml:"secret_key"`
	ReturnURL string `toml:"return_url"`

	// Timeout таймаут одного вызова шлюза в секундах
	Timeout int `toml:"timeout"`

	// BreakerFailures число подряд идущих ошибок, после которого шлюз считается недоступным
	BreakerFailures int `toml:"breaker_failures"`

	// BreakerCooldown время в секундах до пробного запроса после размыкания
	BreakerCooldown int `toml:"breaker_cooldown"`
}

// CatalogConfig настройки кеша каталога услуг (в секундах)
type CatalogConfig struct {
	CacheTTL     int `toml:"cache_ttl"`
	CacheCleanup int `toml:"cache_cleanup"`
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// RateLimitConfig ограничение частоты создания бронирований
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// ReconcilerConfig настройки фоновой сверки статусов оплаты
type ReconcilerConfig struct {
	Enabled   bool `toml:"enabled"`
	Interval  int  `toml:"interval"` // период опроса в секундах
	BatchSize int  `toml:"batch_size"`
}

// secrets значения, которые можно передать через переменные окружения
type secrets struct {
	DBPassword       string `envconfig:"DB_PASSWORD"`
	PaymentShopID    string `envconfig:"PAYMENT_SHOP_ID"`
	PaymentSecretKey string `envconfig:"PAYMENT_SECRET_KEY"`
	AMQPURL          string `envconfig:"AMQP_URL"`
}

// Load читает конфигурацию из toml файла, накладывает переменные окружения STUDIO_* и проверяет её
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadConfig, path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv перекрывает секреты из окружения; незаданные переменные не трогают значения из файла
func applyEnv(cfg *Config) error {
	var s secrets
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return fmt.Errorf("%w: read environment: %v", ErrLoadConfig, err)
	}

	if s.DBPassword != "" {
		cfg.Database.Password = s.DBPassword
	}
	if s.PaymentShopID != "" {
		cfg.Payment.ShopID = s.PaymentShopID
	}
	if s.PaymentSecretKey != "" {
		cfg.Payment.SecretKey = s.PaymentSecretKey
	}
	if s.AMQPURL != "" {
		cfg.Events.URL = s.AMQPURL
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MaxTxRetries:    3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "studio_booking",
		},
		Booking: BookingConfig{
			WindowRadiusMinutes:    300,
			DefaultDurationMinutes: 60,
			Currency:               "RUB",
		},
		Payment: PaymentConfig{
			BaseURL:         "https://api.yookassa.ru/v3",
			Timeout:         10,
			BreakerFailures: 5,
			BreakerCooldown: 30,
		},
		Catalog: CatalogConfig{
			CacheTTL:     60,
			CacheCleanup: 300,
		},
		Events: EventsConfig{
			Exchange: "studio.events",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Reconciler: ReconcilerConfig{
			Interval:  60,
			BatchSize: 50,
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Database.MaxTxRetries < 0 {
		return fmt.Errorf("%w: database.max_tx_retries must not be negative", ErrInvalidConfig)
	}
	if c.Booking.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("%w: booking.default_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.WindowRadiusMinutes < c.Booking.DefaultDurationMinutes {
		return fmt.Errorf("%w: booking.window_radius_minutes must be at least default_duration_minutes", ErrInvalidConfig)
	}
	if c.Booking.Currency == "" {
		return fmt.Errorf("%w: booking.currency is required", ErrInvalidConfig)
	}
	if c.Payment.Enabled {
		if c.Payment.ShopID == "" || c.Payment.SecretKey == "" {
			return fmt.Errorf("%w: payment.shop_id and payment.secret_key are required when payment is enabled", ErrInvalidConfig)
		}
		if c.Payment.Timeout <= 0 {
			return fmt.Errorf("%w: payment.timeout must be positive", ErrInvalidConfig)
		}
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.requests_per_second and burst must be positive", ErrInvalidConfig)
	}
	if c.Reconciler.Enabled && (c.Reconciler.Interval <= 0 || c.Reconciler.BatchSize <= 0) {
		return fmt.Errorf("%w: reconciler.interval and batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}
