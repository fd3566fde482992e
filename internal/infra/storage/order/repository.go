package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

const (
	// windowLockNamespace первый ключ pg_advisory_xact_lock(int4, int4) для блокировок дней календаря
	windowLockNamespace = 20240110

	secondsPerDay = 24 * 60 * 60
)

// Длительность заказа берётся из снимка первой позиции, для старых позиций без снимка из услуги
const firstItemDuration = `(SELECT COALESCE(oi.duration_minutes, s.duration_minutes)
	FROM order_items oi LEFT JOIN services s ON s.id = oi.service_id
	WHERE oi.order_id = o.id ORDER BY oi.id LIMIT 1) AS duration_minutes`

const firstItemJoin = `LATERAL (SELECT oi.service_id, s.name, COALESCE(oi.duration_minutes, s.duration_minutes) AS duration_minutes
	FROM order_items oi LEFT JOIN services s ON s.id = oi.service_id
	WHERE oi.order_id = o.id ORDER BY oi.id LIMIT 1) fi ON TRUE`

// Самая длинная длительность среди снимков позиций и текущих длительностей услуг
const longestDurationQuery = `SELECT GREATEST(
	COALESCE((SELECT MAX(duration_minutes) FROM order_items), 0),
	COALESCE((SELECT MAX(duration_minutes) FROM services), 0))`

var orderColumns = []string{
	"o.id",
	"o.client_id",
	"o.status",
	"o.booking_datetime",
	"o.total_price",
	"o.payment_id",
	"o.created_at",
}

var detailsColumns = append(append([]string{}, orderColumns...),
	"fi.service_id",
	"fi.name",
	"fi.duration_minutes",
)

// Repository репозиторий для работы с заказами и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый заказ
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"client_id",
			"status",
			"booking_datetime",
			"total_price",
			"payment_id",
		).
		Values(
			order.ClientID,
			order.Status,
			order.BookingStart,
			order.TotalPrice,
			order.PaymentID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return order, nil
}

// CreateItem создает позицию заказа
func (r *Repository) CreateItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("order_items").
		Columns(
			"order_id",
			"service_id",
			"price_at_order",
			"duration_minutes",
			"quantity",
		).
		Values(
			item.OrderID,
			item.ServiceID,
			item.PriceAtOrder,
			item.DurationMinutes,
			item.Quantity,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateItem - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateItem - execute insert: %w", ErrExecQuery, err)
	}

	return item, nil
}

// LockWindow берет транзакционные advisory-блокировки на каждый день, который задевает окно [from, to]
// Блокировки берутся по возрастанию, поэтому две транзакции с пересекающимися окнами не получат дедлок
func (r *Repository) LockWindow(ctx context.Context, from, to time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, day := range dayBuckets(from, to) {
		if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1, $2)", windowLockNamespace, day); err != nil {
			return fmt.Errorf("%w: LockWindow - lock day %d: %w", ErrExecQuery, day, err)
		}
	}
	return nil
}

// dayBuckets номера суток (UTC) с начала эпохи, которые задевает интервал [from, to]
func dayBuckets(from, to time.Time) []int32 {
	first := from.Unix() / secondsPerDay
	last := to.Unix() / secondsPerDay
	buckets := make([]int32, 0, last-first+1)
	for d := first; d <= last; d++ {
		buckets = append(buckets, int32(d))
	}
	return buckets
}

// GetLongestDuration возвращает максимальную длительность заказа в минутах, которую может иметь
// уже существующий или новый заказ; 0, если каталог и заказы пусты
func (r *Repository) GetLongestDuration(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var longest int
	if err := executor.QueryRowContext(ctx, longestDurationQuery).Scan(&longest); err != nil {
		return 0, fmt.Errorf("%w: GetLongestDuration - scan: %w", ErrScanRow, err)
	}

	return longest, nil
}

// GetByWindow получает заказы, начинающиеся в [start, end), кроме заказов со статусом excludeStatus
// Внутри транзакции строки блокируются (FOR UPDATE OF o)
func (r *Repository) GetByWindow(ctx context.Context, start, end time.Time, excludeStatus domain.OrderStatus) ([]domain.BookedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("o.id", "o.booking_datetime", firstItemDuration).
		From("orders o").
		Where(squirrel.GtOrEq{"o.booking_datetime": start}).
		Where(squirrel.Lt{"o.booking_datetime": end}).
		Where(squirrel.NotEq{"o.status": excludeStatus}).
		OrderBy("o.booking_datetime ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF o")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BookedInterval, 0)
	for rows.Next() {
		var (
			interval domain.BookedInterval
			duration sql.NullInt64
		)
		if err := rows.Scan(&interval.OrderID, &interval.Start, &duration); err != nil {
			return nil, fmt.Errorf("%w: GetByWindow - scan row: %w", ErrScanRow, err)
		}
		if duration.Valid {
			interval.DurationMinutes = int(duration.Int64)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// GetByID получает заказ по ID
// Внутри транзакции строка блокируется до её завершения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders o").
		Where(squirrel.Eq{"o.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %w", ErrScanRow, err)
	}

	return order, nil
}

// GetByPaymentID получает заказ по ID платежа во внешнем шлюзе
func (r *Repository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders o").
		Where(squirrel.Eq{"o.payment_id": paymentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - build select query: %w", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - scan order: %w", ErrScanRow, err)
	}

	return order, nil
}

// GetDetailsByID получает заказ вместе с услугой первой позиции
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailsColumns...).
		From("orders o").
		LeftJoin(firstItemJoin).
		Where(squirrel.Eq{"o.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %w", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan order: %w", ErrScanRow, err)
	}

	return details, nil
}

// GetByClientID получает заказы клиента, сначала самые поздние по времени съёмки
func (r *Repository) GetByClientID(ctx context.Context, clientID int64) ([]*domain.OrderDetails, error) {
	selectBuilder := psqlbuilder.Select(detailsColumns...).
		From("orders o").
		LeftJoin(firstItemJoin).
		Where(squirrel.Eq{"o.client_id": clientID}).
		OrderBy("o.booking_datetime DESC")

	return r.queryDetails(ctx, "GetByClientID", selectBuilder)
}

// List получает заказы для администратора, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.OrderDetails, error) {
	selectBuilder := psqlbuilder.Select(detailsColumns...).
		From("orders o").
		LeftJoin(firstItemJoin).
		OrderBy("o.created_at DESC", "o.id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"o.status": *filter.Status})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	return r.queryDetails(ctx, "List", selectBuilder)
}

// GetCalendar получает неотменённые заказы, которые пересекаются с [from, to)
// Заказ без известной длительности считается длящимся defaultDurationMinutes
func (r *Repository) GetCalendar(ctx context.Context, from, to time.Time, defaultDurationMinutes int) ([]*domain.OrderDetails, error) {
	return r.queryDetails(ctx, "GetCalendar", calendarQuery(from, to, defaultDurationMinutes))
}

func calendarQuery(from, to time.Time, defaultDurationMinutes int) squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("orders o").
		LeftJoin(firstItemJoin).
		Where(squirrel.NotEq{"o.status": domain.StatusCancelled}).
		Where(squirrel.Lt{"o.booking_datetime": to}).
		Where(squirrel.Expr(
			"o.booking_datetime + make_interval(mins => COALESCE(fi.duration_minutes, ?)) > ?",
			defaultDurationMinutes, from,
		)).
		OrderBy("o.booking_datetime ASC")
}

// GetPendingWithPayment получает ожидающие оплаты заказы с созданным платежом, сначала старые
func (r *Repository) GetPendingWithPayment(ctx context.Context, limit uint64) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders o").
		Where(squirrel.Eq{"o.status": domain.StatusPending}).
		Where(squirrel.NotEq{"o.payment_id": nil}).
		OrderBy("o.created_at ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingWithPayment - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingWithPayment - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPendingWithPayment - scan row: %w", ErrScanRow, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPendingWithPayment - rows error: %w", ErrScanRow, err)
	}

	return orders, nil
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return r.updateColumn(ctx, "UpdateStatus", id, "status", status)
}

// SetPaymentID сохраняет ID платежа во внешнем шлюзе
func (r *Repository) SetPaymentID(ctx context.Context, id int64, paymentID string) error {
	return r.updateColumn(ctx, "SetPaymentID", id, "payment_id", paymentID)
}

// DeleteItems удаляет все позиции заказа
func (r *Repository) DeleteItems(ctx context.Context, orderID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("order_items").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteItems - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteItems - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет заказ (позиции нужно удалить раньше в той же транзакции)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *Repository) updateColumn(ctx context.Context, op string, id int64, column string, value interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set(column, value).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *Repository) queryDetails(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.OrderDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.OrderDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.ClientID,
		&order.Status,
		&order.BookingStart,
		&order.TotalPrice,
		&order.PaymentID,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func scanDetails(row rowScanner) (*domain.OrderDetails, error) {
	var (
		details     domain.OrderDetails
		serviceID   sql.NullInt64
		serviceName sql.NullString
		duration    sql.NullInt64
	)
	err := row.Scan(
		&details.ID,
		&details.ClientID,
		&details.Status,
		&details.BookingStart,
		&details.TotalPrice,
		&details.PaymentID,
		&details.CreatedAt,
		&serviceID,
		&serviceName,
		&duration,
	)
	if err != nil {
		return nil, err
	}

	details.ServiceID = serviceID.Int64
	details.ServiceName = serviceName.String
	details.DurationMinutes = int(duration.Int64)

	return &details, nil
}
