package constraint

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
)

// Repository репозиторий закрытых интервалов по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ограничений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate возвращает ограничение на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.ConstraintRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day", "updated_at").
		From("constraint_rules").
		Where(squirrel.Eq{"day": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.ConstraintRule
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.Date, &rule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConstraintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan rule: %w", ErrScanRow, err)
	}

	ranges, err := r.getRanges(ctx, executor, rule.ID)
	if err != nil {
		return nil, err
	}
	rule.Ranges = ranges
	return &rule, nil
}

// Upsert заменяет интервалы даты целиком
// Вызывать внутри транзакции: удаление старых и вставка новых интервалов должны быть атомарны
func (r *Repository) Upsert(ctx context.Context, date time.Time, ranges []domain.BlackoutRange) (*domain.ConstraintRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("constraint_rules").
		Columns("day").
		Values(date.Format(domain.DateFormat)).
		Suffix("ON CONFLICT (day) DO UPDATE SET updated_at = NOW() RETURNING id, day, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var rule domain.ConstraintRule
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.Date, &rule.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("constraint_ranges").
		Where(squirrel.Eq{"rule_id": rule.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build delete ranges query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - delete ranges: %w", ErrExecQuery, err)
	}

	rule.Ranges = ranges
	if len(ranges) == 0 {
		return &rule, nil
	}

	builder := psqlbuilder.Insert("constraint_ranges").
		Columns("rule_id", "position", "start_time", "end_time")
	for i, rng := range ranges {
		builder = builder.Values(rule.ID, i, rng.Start, rng.End)
	}
	query, args, err = builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build ranges insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - insert ranges: %w", ErrExecQuery, err)
	}

	return &rule, nil
}

// DeleteByDate удаляет ограничение даты (интервалы удаляются каскадно)
// Отсутствие записи не считается ошибкой
func (r *Repository) DeleteByDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("constraint_rules").
		Where(squirrel.Eq{"day": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByDate - execute delete: %w", ErrExecQuery, err)
	}
	return nil
}

// ListFrom возвращает ограничения начиная с даты, по возрастанию даты
func (r *Repository) ListFrom(ctx context.Context, from time.Time) ([]*domain.ConstraintRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day", "updated_at").
		From("constraint_rules").
		Where(squirrel.GtOrEq{"day": from.Format(domain.DateFormat)}).
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - execute query: %w", ErrExecQuery, err)
	}

	rules := make([]*domain.ConstraintRule, 0)
	for rows.Next() {
		var rule domain.ConstraintRule
		if err := rows.Scan(&rule.ID, &rule.Date, &rule.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: ListFrom - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: ListFrom - rows error: %v", ErrScanRow, err)
	}
	rows.Close()

	for _, rule := range rules {
		ranges, err := r.getRanges(ctx, executor, rule.ID)
		if err != nil {
			return nil, err
		}
		rule.Ranges = ranges
	}
	return rules, nil
}

func (r *Repository) getRanges(ctx context.Context, executor DBExecutor, ruleID int64) ([]domain.BlackoutRange, error) {
	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From("constraint_ranges").
		Where(squirrel.Eq{"rule_id": ruleID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getRanges - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]domain.BlackoutRange, 0)
	for rows.Next() {
		var rng domain.BlackoutRange
		if err := rows.Scan(&rng.Start, &rng.End); err != nil {
			return nil, fmt.Errorf("%w: getRanges - scan range: %v", ErrScanRow, err)
		}
		ranges = append(ranges, rng)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getRanges - rows error: %v", ErrScanRow, err)
	}
	return ranges, nil
}
