package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureUnits добавляет отсутствующие позиции каталога, существующие не трогает
// Возвращает количество добавленных позиций
func (r *Repository) EnsureUnits(ctx context.Context, units []*domain.CatalogUnit) (int64, error) {
	if len(units) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("catalog_units").
		Columns("category", "duration_minutes", "name", "price")
	for _, u := range units {
		builder = builder.Values(u.Key.Category, u.Key.Duration, u.Name, u.UnitPrice)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (category, duration_minutes) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: EnsureUnits - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: EnsureUnits - execute insert: %w", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: EnsureUnits - get rows affected: %w", ErrExecQuery, err)
	}
	return inserted, nil
}

// List возвращает весь каталог
func (r *Repository) List(ctx context.Context) ([]*domain.CatalogUnit, error) {
	return r.query(ctx, "List", nil)
}

// GetByKeys возвращает позиции каталога по ключам (category, duration)
// Отсутствующие ключи просто не попадают в результат
func (r *Repository) GetByKeys(ctx context.Context, keys []domain.CatalogKey) ([]*domain.CatalogUnit, error) {
	if len(keys) == 0 {
		return []*domain.CatalogUnit{}, nil
	}
	or := make(squirrel.Or, 0, len(keys))
	for _, k := range keys {
		or = append(or, squirrel.Eq{"category": k.Category, "duration_minutes": k.Duration})
	}
	return r.query(ctx, "GetByKeys", or)
}

func (r *Repository) query(ctx context.Context, method string, where squirrel.Sqlizer) ([]*domain.CatalogUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "category", "duration_minutes", "name", "price").
		From("catalog_units").
		OrderBy("category ASC", "duration_minutes ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	return scanUnits(rows)
}

func scanUnits(rows *sql.Rows) ([]*domain.CatalogUnit, error) {
	units := make([]*domain.CatalogUnit, 0)
	for rows.Next() {
		var u domain.CatalogUnit
		if err := rows.Scan(&u.ID, &u.Key.Category, &u.Key.Duration, &u.Name, &u.UnitPrice); err != nil {
			return nil, fmt.Errorf("%w: scanUnits - scan row: %v", ErrScanRow, err)
		}
		units = append(units, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanUnits - rows error: %v", ErrScanRow, err)
	}
	return units, nil
}
