package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	createBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_booking"
	deleteOrderHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/delete_order"
	getCalendarHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_calendar"
	getOrderHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_order"
	getUserOrdersHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_user_orders"
	listOrdersHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_orders"
	payOrderHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/pay_order"
	paymentWebhookHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/payment_webhook"
	refreshPaymentHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/refresh_payment"
	updateOrderStatusHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/update_order_status"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	orderRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/order"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payment"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/yookassa"
	ordersService "github.com/m04kA/SMC-StudioBooking/internal/service/orders"
	createBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	getCalendarUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_calendar"
	payOrderUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/pay_order"
	reconcilePaymentUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
	"github.com/m04kA/SMC-StudioBooking/internal/worker"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/mq"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

// PaymentGateway общий интерфейс шлюза для use cases
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req *payment.CreateRequest) (*payment.Intent, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (payment.Status, error)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("STUDIO_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StudioBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики; при выключенных метриках nil *Metrics безопасно игнорирует записи
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Database.MaxTxRetries),
		txmanager.WithRetryHook(metricsCollector.RecordTxRetry),
	)

	// Репозитории
	orderRepository := orderRepo.NewRepository(wrappedDB)
	serviceRepository := catalogRepo.NewCachedRepository(
		catalogRepo.NewRepository(wrappedDB),
		time.Duration(cfg.Catalog.CacheTTL)*time.Second,
		time.Duration(cfg.Catalog.CacheCleanup)*time.Second,
	)

	// Платежный шлюз
	var gateway PaymentGateway = payment.Disabled{}
	if cfg.Payment.Enabled {
		client := yookassa.NewClient(yookassa.Config{
			BaseURL:   cfg.Payment.BaseURL,
			ShopID:    cfg.Payment.ShopID,
			SecretKey: cfg.Payment.SecretKey,
			Timeout:   time.Duration(cfg.Payment.Timeout) * time.Second,
		}, log)
		gateway = payment.NewGateway(client, payment.BreakerSettings{
			MaxFailures: uint32(cfg.Payment.BreakerFailures),
			Cooldown:    time.Duration(cfg.Payment.BreakerCooldown) * time.Second,
		}, log)
		log.Info("Payment gateway initialized (base_url=%s, timeout=%ds)", cfg.Payment.BaseURL, cfg.Payment.Timeout)
	} else {
		log.Warn("Payment gateway disabled: orders stay pending without payment")
	}

	// Публикация событий; nil *Publisher ничего не отправляет
	var publisher *mq.Publisher
	if cfg.Events.Enabled {
		publisher, err = mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	}

	// Сервисы
	orderSvc := ordersService.NewService(
		orderRepository,
		txMgr,
		publisher,
		metricsCollector,
		cfg.Booking.DefaultDurationMinutes,
		log,
	)

	// Use cases
	paymentTimeout := time.Duration(cfg.Payment.Timeout) * time.Second

	createBookingUseCase := createBookingUC.NewUseCase(
		serviceRepository,
		orderRepository,
		gateway,
		publisher,
		txMgr,
		metricsCollector,
		createBookingUC.Config{
			WindowRadius:           cfg.Booking.WindowRadius(),
			DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
			Currency:               cfg.Booking.Currency,
			ReturnURL:              cfg.Payment.ReturnURL,
			PaymentTimeout:         paymentTimeout,
		},
		log,
	)

	payOrderUseCase := payOrderUC.NewUseCase(
		orderRepository,
		gateway,
		metricsCollector,
		payOrderUC.Config{
			Currency:       cfg.Booking.Currency,
			ReturnURL:      cfg.Payment.ReturnURL,
			PaymentTimeout: paymentTimeout,
		},
		log,
	)

	reconcilePaymentUseCase := reconcilePaymentUC.NewUseCase(
		orderRepository,
		gateway,
		publisher,
		txMgr,
		metricsCollector,
		paymentTimeout,
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(
		orderRepository,
		cfg.Booking.DefaultDurationMinutes,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(orderSvc, log)
	payOrder := payOrderHandler.NewHandler(payOrderUseCase, log)
	refreshPayment := refreshPaymentHandler.NewHandler(reconcilePaymentUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(reconcilePaymentUseCase, log)
	listOrders := listOrdersHandler.NewHandler(orderSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(orderSvc, log)
	deleteOrder := deleteOrderHandler.NewHandler(orderSvc, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Уведомления платежного шлюза
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования (с ограничением частоты, если включено)
	var createHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst: cfg.RateLimit.Burst,
		})
		createHandler = limiter.Wrap(createHandler)
		log.Info("Rate limit on order creation: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	protected.Handle("/orders", createHandler).Methods(http.MethodPost)

	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/payment", payOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}/payment/refresh", refreshPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/orders", getUserOrders.Handle).Methods(http.MethodGet)

	// --- Администрирование студии ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/orders", listOrders.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{orderId}", deleteOrder.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Фоновая сверка оплат
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	if cfg.Reconciler.Enabled && cfg.Payment.Enabled {
		reconciler, err := worker.NewPaymentReconciler(
			orderRepository,
			reconcilePaymentUseCase,
			worker.PaymentReconcilerConfig{
				BatchSize:    uint64(cfg.Reconciler.BatchSize),
				PollInterval: time.Duration(cfg.Reconciler.Interval) * time.Second,
			},
			metricsCollector,
			log,
		)
		if err != nil {
			log.Fatal("Failed to create payment reconciler: %v", err)
		}
		go func() {
			defer close(workerDone)
			reconciler.Start(workerCtx)
		}()
	} else {
		close(workerDone)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopWorker()
	<-workerDone

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
