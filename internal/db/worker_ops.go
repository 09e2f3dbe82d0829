package db

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
)

var (
	// ErrWorkerNotFound — нет кошелька с таким telegram_id.
	ErrWorkerNotFound = errors.New("исполнитель не найден")
	// ErrInsufficientFunds — баланс меньше требуемого депозита.
	ErrInsufficientFunds = errors.New("недостаточно средств на балансе")
)

// WorkersStore — персистентность кошельков исполнителей.
type WorkersStore struct{}

// GetWorkerByTelegramID возвращает кошелёк исполнителя.
func (WorkersStore) GetWorkerByTelegramID(ctx context.Context, telegramID int64) (models.Worker, error) {
	var w models.Worker
	var name sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := DB.QueryRowContext(ctx, `
        SELECT id, telegram_id, name, balance_egp, is_verified, created_at, updated_at
        FROM worker_balances
        WHERE telegram_id = $1`, telegramID).Scan(
		&w.ID, &w.TelegramID, &name, &w.BalanceEGP, &w.IsVerified, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return w, ErrWorkerNotFound
		}
		logger.Log.Error("worker fetch failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return w, err
	}

	w.Name = name.String
	if createdAt.Valid {
		w.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		w.UpdatedAt = updatedAt.Time
	}
	return w, nil
}

// LockDeposit атомарно списывает депозит с баланса исполнителя.
// Баланс перечитывается под FOR UPDATE, чтобы параллельное взятие двух
// заказов не увело кошелёк в минус. Возвращает баланс после списания.
func (WorkersStore) LockDeposit(ctx context.Context, telegramID int64, deposit float64) (float64, error) {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Log.Error("lock deposit: begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	var balance float64
	err = tx.QueryRowContext(ctx,
		"SELECT balance_egp FROM worker_balances WHERE telegram_id=$1 FOR UPDATE",
		telegramID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrWorkerNotFound
		}
		logger.Log.Error("lock deposit: balance read failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return 0, err
	}

	if balance < deposit {
		return balance, ErrInsufficientFunds
	}

	newBalance := balance - deposit
	_, err = tx.ExecContext(ctx,
		"UPDATE worker_balances SET balance_egp=$1, updated_at=NOW() WHERE telegram_id=$2",
		newBalance, telegramID)
	if err != nil {
		logger.Log.Error("lock deposit: update failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		logger.Log.Error("lock deposit: commit failed", zap.Error(err))
		return 0, err
	}

	logger.Log.Info("deposit locked",
		zap.Int64("telegram_id", telegramID),
		zap.Float64("deposit_egp", deposit),
		zap.Float64("balance_egp", newBalance),
	)
	return newBalance, nil
}
