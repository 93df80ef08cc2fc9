package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository репозиторий версий доступности
// Версии только добавляются, изменение и удаление не поддерживаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую версию вместе с интервалами
// Вызывать внутри транзакции, иначе при ошибке останется версия без интервалов
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var targetDate interface{}
	if rule.TargetDate != nil {
		targetDate = rule.TargetDate.Format(domain.DateFormat)
	}

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns("kind", "weekday", "target_date", "created_at").
		Values(rule.Kind, rule.Weekday, targetDate, rule.CreatedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	rule.CreatedAt = rule.CreatedAt.UTC()

	if len(rule.Ranges) == 0 {
		return rule, nil
	}

	builder := psqlbuilder.Insert("availability_ranges").
		Columns("rule_id", "position", "start_time", "end_time", "capacity")
	for i, rng := range rule.Ranges {
		builder = builder.Values(rule.ID, i, rng.Start, rng.End, rng.Capacity)
	}

	query, args, err = builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build ranges insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - insert ranges: %w", ErrExecQuery, err)
	}

	return rule, nil
}

// GetRulesForDate возвращает все версии, относящиеся к дате:
// specific_date на эту дату и weekday на её день недели, по возрастанию created_at
func (r *Repository) GetRulesForDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityRule, error) {
	where := squirrel.Or{
		squirrel.Eq{"kind": domain.RuleKindSpecificDate, "target_date": date.Format(domain.DateFormat)},
		squirrel.Eq{"kind": domain.RuleKindWeekday, "weekday": domain.ISOWeekday(date)},
	}
	return r.getRules(ctx, "GetRulesForDate", where)
}

// GetByID возвращает версию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	rules, err := r.getRules(ctx, "GetByID", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrRuleNotFound
	}
	return rules[0], nil
}

func (r *Repository) getRules(ctx context.Context, method string, where squirrel.Sqlizer) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "kind", "weekday", "target_date", "created_at").
		From("availability_rules").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	byID := make(map[int64]*domain.AvailabilityRule)
	for rows.Next() {
		var (
			rule       domain.AvailabilityRule
			weekday    sql.NullInt64
			targetDate sql.NullTime
		)
		if err := rows.Scan(&rule.ID, &rule.Kind, &weekday, &targetDate, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan rule: %v", ErrScanRow, method, err)
		}
		rule.CreatedAt = rule.CreatedAt.UTC()
		if weekday.Valid {
			wd := int(weekday.Int64)
			rule.Weekday = &wd
		}
		if targetDate.Valid {
			td := targetDate.Time
			rule.TargetDate = &td
		}
		rule.Ranges = make([]domain.TimeRange, 0)
		rules = append(rules, &rule)
		byID[rule.ID] = &rule
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	if len(rules) == 0 {
		return rules, nil
	}

	if err := r.loadRanges(ctx, executor, byID); err != nil {
		return nil, err
	}
	return rules, nil
}

// loadRanges подгружает интервалы для набора версий одним запросом
func (r *Repository) loadRanges(ctx context.Context, executor DBExecutor, byID map[int64]*domain.AvailabilityRule) error {
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select("rule_id", "start_time", "end_time", "capacity").
		From("availability_ranges").
		Where(squirrel.Eq{"rule_id": ids}).
		OrderBy("rule_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadRanges - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ruleID int64
			rng    domain.TimeRange
		)
		if err := rows.Scan(&ruleID, &rng.Start, &rng.End, &rng.Capacity); err != nil {
			return fmt.Errorf("%w: loadRanges - scan range: %v", ErrScanRow, err)
		}
		if rule, ok := byID[ruleID]; ok {
			rule.Ranges = append(rule.Ranges, rng)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadRanges - rows error: %v", ErrScanRow, err)
	}
	return nil
}
