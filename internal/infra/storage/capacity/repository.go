package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий общей вместимости (одна строка на всю систему)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вместимости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущую вместимость
func (r *Repository) Get(ctx context.Context) (*domain.Capacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "value", "updated_at").
		From("capacity").
		Where(squirrel.Eq{"singleton": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Capacity
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Value, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan capacity: %w", ErrScanRow, err)
	}
	return &c, nil
}

// Create создает вместимость; второй экземпляр создать нельзя
func (r *Repository) Create(ctx context.Context, value int) (*domain.Capacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("capacity").
		Columns("singleton", "value").
		Values(true, value).
		Suffix("ON CONFLICT (singleton) DO NOTHING RETURNING id, value, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var c domain.Capacity
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Value, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapacityAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return &c, nil
}

// Update меняет значение существующей вместимости
func (r *Repository) Update(ctx context.Context, value int) (*domain.Capacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity").
		Set("value", value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"singleton": true}).
		Suffix("RETURNING id, value, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var c domain.Capacity
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Value, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}
	return &c, nil
}
