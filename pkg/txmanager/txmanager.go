// Package txmanager менеджер транзакций поверх dbmetrics.DB с учетом
// исходов транзакций в метриках.
package txmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/makarovaK/STR-BookingService/pkg/dbmetrics"
	"github.com/makarovaK/STR-BookingService/pkg/metrics"
	"github.com/makarovaK/STR-BookingService/pkg/simpletxmanager"
)

// maxSerializableRetries количество повторов сериализуемой транзакции
const maxSerializableRetries = 3

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в рамках инструментированной транзакции
type TransactionManager struct {
	db      TxBeginner
	metrics *metrics.Metrics
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// NewTransactionManagerWithMetrics создает менеджер транзакций со счетчиком исходов
func NewTransactionManagerWithMetrics(db *dbmetrics.DB, m *metrics.Metrics) *TransactionManager {
	return &TransactionManager{db: db, metrics: m}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, "default", fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// Конфликты сериализации (SQLSTATE 40001) повторяются ограниченное число раз.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, "serializable", fn)
		if !simpletxmanager.IsSerializationFailure(err) {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, "read_only", fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, isolation string, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin tx: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.observe(isolation, "rollback_failed")
			return fmt.Errorf("txmanager: rollback after %v: %w", err, rbErr)
		}
		m.observe(isolation, "rollback")
		return err
	}

	if err := tx.Commit(); err != nil {
		m.observe(isolation, "commit_failed")
		return fmt.Errorf("txmanager: commit tx: %w", err)
	}

	m.observe(isolation, "commit")
	return nil
}

func (m *TransactionManager) observe(isolation, outcome string) {
	if m.metrics == nil {
		return
	}
	m.metrics.TxTotal.WithLabelValues(isolation, outcome).Inc()
}
