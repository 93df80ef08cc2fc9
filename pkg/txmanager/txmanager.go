package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
)

// serializationFailure код ошибки PostgreSQL при конфликте сериализуемых транзакций
const serializationFailure = "40001"

// defaultMaxAttempts сколько раз повторяем сериализуемую транзакцию при конфликте
const defaultMaxAttempts = 3

var (
	// ErrBeginTx возвращается, когда не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, когда не удалось закоммитить транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrUnsupportedDB возвращается, если тип соединения не умеет начинать транзакции
	ErrUnsupportedDB = errors.New("txmanager: db type not supported")
)

// TxBeginner интерфейс для начала транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager менеджер транзакций
// Транзакция кладется в контекст, репозитории достают её через dbmetrics.GetExecutor
type Manager struct {
	db          dbmetrics.DBExecutor
	maxAttempts int
}

// NewTransactionManager создает менеджер транзакций
// Поддерживает *sql.DB и *dbmetrics.DB
func NewTransactionManager(db dbmetrics.DBExecutor) *Manager {
	return &Manager{db: db, maxAttempts: defaultMaxAttempts}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelDefault}, 1, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При конфликте сериализации (40001) транзакция повторяется целиком
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, m.maxAttempts, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, 1, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, attempts int, fn func(ctx context.Context) error) error {
	// Вложенный вызов - переиспользуем внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = m.runOnce(ctx, opts, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (m *Manager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.begin(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

func (m *Manager) begin(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if beginner, ok := m.db.(TxBeginner); ok {
		tx, err := beginner.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBeginTx, err)
		}
		return tx, nil
	}

	if db, ok := m.db.(*sql.DB); ok {
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBeginTx, err)
		}
		return &dbmetrics.SqlTxWrapper{Tx: tx}, nil
	}

	return nil, ErrUnsupportedDB
}

// isSerializationFailure проверяет, что ошибка - конфликт сериализации PostgreSQL
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	return false
}
