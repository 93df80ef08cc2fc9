package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// CreateLog добавляет запись в журнал изменений бронирования
func (r *Repository) CreateLog(ctx context.Context, entry *domain.BookingLog) (*domain.BookingLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_logs").
		Columns("booking_id", "message").
		Values(entry.BookingID, entry.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLog - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateLog - execute insert: %w", ErrExecQuery, err)
	}
	return entry, nil
}

// GetLogs возвращает журнал бронирования, новые записи первыми
func (r *Repository) GetLogs(ctx context.Context, bookingID int64) ([]*domain.BookingLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "message", "created_at").
		From("booking_logs").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLogs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLogs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	logs := make([]*domain.BookingLog, 0)
	for rows.Next() {
		var entry domain.BookingLog
		if err := rows.Scan(&entry.ID, &entry.BookingID, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetLogs - scan row: %v", ErrScanRow, err)
		}
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLogs - rows error: %v", ErrScanRow, err)
	}
	return logs, nil
}
