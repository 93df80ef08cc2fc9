package bundle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

var bundleColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"visible",
	"uses_capacity",
	"uses_massagist",
	"signature_hash",
	"created_at",
}

// Repository репозиторий пакетов услуг
// Пакеты не изменяются и не удаляются: смена услуг перепривязывает бронирование к другому пакету
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пакет вместе со строками
// Если пакет с тем же signature_hash уже есть, возвращает ErrDuplicateSignature
// (ON CONFLICT DO NOTHING не прерывает внешнюю транзакцию, в отличие от unique violation)
func (r *Repository) Create(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("bundles").
		Columns("name", "description", "price", "visible", "uses_capacity", "uses_massagist", "signature_hash").
		Values(
			bundle.Name,
			bundle.Description,
			bundle.Price,
			bundle.Visible,
			bundle.UsesCapacity,
			bundle.UsesMassagist,
			bundle.SignatureHash,
		)
	if bundle.SignatureHash != nil {
		insert = insert.Suffix("ON CONFLICT (signature_hash) DO NOTHING RETURNING id, created_at")
	} else {
		insert = insert.Suffix("RETURNING id, created_at")
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&bundle.ID, &bundle.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateSignature
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if len(bundle.Lines) == 0 {
		return bundle, nil
	}

	lines := psqlbuilder.Insert("bundle_lines").
		Columns("bundle_id", "catalog_unit_id", "quantity")
	for _, l := range bundle.Lines {
		lines = lines.Values(bundle.ID, l.CatalogUnitID, l.Quantity)
	}

	query, args, err = lines.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build lines insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - insert lines: %w", ErrExecQuery, err)
	}

	return bundle, nil
}

// GetByID получает пакет со строками
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Bundle, error) {
	bundles, err := r.find(ctx, "GetByID", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(bundles) == 0 {
		return nil, ErrBundleNotFound
	}
	return bundles[0], nil
}

// GetBySignatureHash получает пакет по ключу идемпотентности
func (r *Repository) GetBySignatureHash(ctx context.Context, hash string) (*domain.Bundle, error) {
	bundles, err := r.find(ctx, "GetBySignatureHash", squirrel.Eq{"signature_hash": hash})
	if err != nil {
		return nil, err
	}
	if len(bundles) == 0 {
		return nil, ErrBundleNotFound
	}
	return bundles[0], nil
}

// FindByPrice возвращает кандидатов с точно такой же ценой, по возрастанию id
func (r *Repository) FindByPrice(ctx context.Context, price decimal.Decimal) ([]*domain.Bundle, error) {
	return r.find(ctx, "FindByPrice", squirrel.Eq{"price": price.StringFixed(domain.MoneyPlaces)})
}

func (r *Repository) find(ctx context.Context, method string, where squirrel.Sqlizer) ([]*domain.Bundle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bundleColumns...).
		From("bundles").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}

	bundles := make([]*domain.Bundle, 0)
	byID := make(map[int64]*domain.Bundle)
	for rows.Next() {
		var (
			b    domain.Bundle
			desc sql.NullString
			hash sql.NullString
		)
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&desc,
			&b.Price,
			&b.Visible,
			&b.UsesCapacity,
			&b.UsesMassagist,
			&hash,
			&b.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %s - scan bundle: %v", ErrScanRow, method, err)
		}
		if desc.Valid {
			b.Description = &desc.String
		}
		if hash.Valid {
			b.SignatureHash = &hash.String
		}
		b.Lines = make([]domain.BundleLine, 0)
		bundles = append(bundles, &b)
		byID[b.ID] = &b
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}
	rows.Close()

	if len(bundles) == 0 {
		return bundles, nil
	}
	if err := r.loadLines(ctx, executor, byID); err != nil {
		return nil, err
	}
	return bundles, nil
}

// loadLines подгружает строки пакетов вместе с ключами каталога
func (r *Repository) loadLines(ctx context.Context, executor DBExecutor, byID map[int64]*domain.Bundle) error {
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select(
		"bl.bundle_id",
		"bl.catalog_unit_id",
		"cu.category",
		"cu.duration_minutes",
		"cu.price",
		"bl.quantity",
	).
		From("bundle_lines bl").
		Join("catalog_units cu ON cu.id = bl.catalog_unit_id").
		Where(squirrel.Eq{"bl.bundle_id": ids}).
		OrderBy("bl.bundle_id ASC", "bl.id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadLines - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bundleID int64
			line     domain.BundleLine
		)
		if err := rows.Scan(
			&bundleID,
			&line.CatalogUnitID,
			&line.Key.Category,
			&line.Key.Duration,
			&line.UnitPrice,
			&line.Quantity,
		); err != nil {
			return fmt.Errorf("%w: loadLines - scan line: %v", ErrScanRow, err)
		}
		if b, ok := byID[bundleID]; ok {
			b.Lines = append(b.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadLines - rows error: %v", ErrScanRow, err)
	}
	return nil
}
