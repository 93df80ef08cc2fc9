package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"internal_order_id",
	"client_id",
	"creator_kind",
	"creator_id",
	"book_date",
	"hour",
	"people",
	"comment",
	"bundle_id",
	"amount_paid",
	"amount_pending",
	"payment_date",
	"checked_in",
	"checked_out",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
// При занятом internal_order_id возвращает ErrDuplicateOrderID, транзакция при этом не прерывается
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var creatorKind, creatorID interface{}
	if booking.Creator != nil {
		creatorKind = booking.Creator.Kind
		creatorID = booking.Creator.ID
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"internal_order_id",
			"client_id",
			"creator_kind",
			"creator_id",
			"book_date",
			"hour",
			"people",
			"comment",
			"bundle_id",
			"amount_paid",
			"amount_pending",
			"payment_date",
		).
		Values(
			booking.InternalOrderID,
			booking.ClientID,
			creatorKind,
			creatorID,
			booking.Date.Format(domain.DateFormat),
			booking.Time,
			booking.People,
			booking.Comment,
			booking.BundleID,
			booking.AmountPaid,
			booking.AmountPending,
			booking.PaymentDate,
		).
		Suffix("ON CONFLICT (internal_order_id) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateOrderID
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// ListByDate возвращает бронирования на дату по времени начала
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"book_date": date.Format(domain.DateFormat)}).
		OrderBy("hour ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// SumPeopleAtSlot возвращает суммарное количество человек на точные дату и время
// Внутри транзакции строки слота блокируются (FOR UPDATE), поэтому суммируем в Go:
// агрегат с FOR UPDATE Postgres не допускает
func (r *Repository) SumPeopleAtSlot(ctx context.Context, date time.Time, hour types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("people").
		From("bookings").
		Where(squirrel.Eq{"book_date": date.Format(domain.DateFormat), "hour": hour})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumPeopleAtSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SumPeopleAtSlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var people int
		if err := rows.Scan(&people); err != nil {
			return 0, fmt.Errorf("%w: SumPeopleAtSlot - scan row: %v", ErrScanRow, err)
		}
		total += people
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: SumPeopleAtSlot - rows error: %v", ErrScanRow, err)
	}
	return total, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("book_date", booking.Date.Format(domain.DateFormat)).
		Set("hour", booking.Time).
		Set("people", booking.People).
		Set("comment", booking.Comment).
		Set("bundle_id", booking.BundleID).
		Set("amount_paid", booking.AmountPaid).
		Set("amount_pending", booking.AmountPending).
		Set("payment_date", booking.PaymentDate).
		Set("checked_in", booking.CheckedIn).
		Set("checked_out", booking.CheckedOut).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ExistsInternalOrderID проверяет, занят ли внутренний номер заказа
func (r *Repository) ExistsInternalOrderID(ctx context.Context, orderID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"internal_order_id": orderID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsInternalOrderID - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsInternalOrderID - scan row: %w", ErrScanRow, err)
	}
	return true, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			booking     domain.Booking
			clientID    sql.NullInt64
			creatorKind sql.NullString
			creatorID   sql.NullInt64
			comment     sql.NullString
			paymentDate sql.NullTime
		)

		err := rows.Scan(
			&booking.ID,
			&booking.InternalOrderID,
			&clientID,
			&creatorKind,
			&creatorID,
			&booking.Date,
			&booking.Time,
			&booking.People,
			&comment,
			&booking.BundleID,
			&booking.AmountPaid,
			&booking.AmountPending,
			&paymentDate,
			&booking.CheckedIn,
			&booking.CheckedOut,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if clientID.Valid {
			booking.ClientID = &clientID.Int64
		}
		if creatorKind.Valid && creatorID.Valid {
			booking.Creator = &domain.Creator{Kind: domain.CreatorKind(creatorKind.String), ID: creatorID.Int64}
		}
		if comment.Valid {
			booking.Comment = &comment.String
		}
		if paymentDate.Valid {
			booking.PaymentDate = &paymentDate.Time
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
