package db

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
)

// GetLoyaltyCount возвращает счётчик заказов по номеру телефона.
// Для неизвестного номера возвращается 0 без ошибки.
func (OrdersStore) GetLoyaltyCount(ctx context.Context, phone string) (int, error) {
	var count int
	err := DB.QueryRowContext(ctx,
		"SELECT orders_count FROM loyalty_counters WHERE phone=$1", phone).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		logger.Log.Error("loyalty fetch failed", zap.String("phone", phone), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// IncrementLoyalty увеличивает счётчик заказов клиента и возвращает новое значение.
func (OrdersStore) IncrementLoyalty(ctx context.Context, phone string) (int, error) {
	var count int
	err := DB.QueryRowContext(ctx, `
        INSERT INTO loyalty_counters (phone, orders_count, updated_at)
        VALUES ($1, 1, NOW())
        ON CONFLICT (phone)
        DO UPDATE SET orders_count = loyalty_counters.orders_count + 1, updated_at = NOW()
        RETURNING orders_count`, phone).Scan(&count)
	if err != nil {
		logger.Log.Error("loyalty increment failed", zap.String("phone", phone), zap.Error(err))
		return 0, err
	}
	return count, nil
}
