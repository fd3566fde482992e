package worker

import (
	"context"
	"fmt"
	"time"

	reconcilePayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/reconcile_payment"
)

// Результаты итерации для метрик
const (
	RunResultOK      = "ok"
	RunResultPartial = "partial"
	RunResultError   = "error"
)

// PaymentReconcilerConfig настройки фоновой сверки
type PaymentReconcilerConfig struct {
	BatchSize    uint64
	PollInterval time.Duration
}

// PaymentReconciler периодически сверяет заказы в статусе pending, у которых уже создан платёж
// Нужен на случай, когда webhook шлюза не дошёл, а клиент не вернулся на сайт
type PaymentReconciler struct {
	repo    PendingOrderRepository
	useCase ReconcileUseCase
	config  PaymentReconcilerConfig
	metrics Metrics
	logger  Logger
}

func NewPaymentReconciler(
	repo PendingOrderRepository,
	useCase ReconcileUseCase,
	config PaymentReconcilerConfig,
	metrics Metrics,
	logger Logger,
) (*PaymentReconciler, error) {
	if config.BatchSize == 0 {
		return nil, fmt.Errorf("payment reconciler: batch size must be greater than 0")
	}
	if config.PollInterval <= 0 {
		return nil, fmt.Errorf("payment reconciler: poll interval must be greater than 0")
	}

	return &PaymentReconciler{
		repo:    repo,
		useCase: useCase,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Start блокируется до отмены ctx
func (p *PaymentReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("PaymentReconciler: started, interval=%s, batch=%d", p.config.PollInterval, p.config.BatchSize)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("PaymentReconciler: stopped")
			return
		case <-ticker.C:
			result := p.RunOnce(ctx)
			p.metrics.RecordReconcilerRun(result)
		}
	}
}

// RunOnce сверяет одну пачку заказов и возвращает результат для метрик
func (p *PaymentReconciler) RunOnce(ctx context.Context) string {
	orders, err := p.repo.GetPendingWithPayment(ctx, p.config.BatchSize)
	if err != nil {
		p.logger.Error("PaymentReconciler: failed to get pending orders: %v", err)
		return RunResultError
	}

	if len(orders) == 0 {
		p.logger.Debug("PaymentReconciler: no pending orders with payment")
		return RunResultOK
	}

	var changed, failed int
	for _, order := range orders {
		if ctx.Err() != nil {
			break
		}

		resp, err := p.useCase.Execute(ctx, &reconcilePayment.Request{
			OrderID: order.ID,
			Source:  reconcilePayment.SourceReconciler,
		})
		if err != nil {
			failed++
			p.logger.Warn("PaymentReconciler: order id=%d: %v", order.ID, err)
			continue
		}
		if resp.Changed {
			changed++
		}
	}

	p.logger.Info("PaymentReconciler: checked=%d, changed=%d, failed=%d", len(orders), changed, failed)

	if failed > 0 {
		if failed == len(orders) {
			return RunResultError
		}
		return RunResultPartial
	}
	return RunResultOK
}
