package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq" // Для работы с массивами PostgreSQL
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
)

// ErrOrderNotFound возвращается, когда заказ с указанным ID отсутствует.
var ErrOrderNotFound = errors.New("заказ не найден")

// OrdersStore — персистентность заказов поверх глобального DB.
// Отдельный тип нужен, чтобы слой приёма заказов зависел от интерфейса,
// а не от пакета db напрямую.
type OrdersStore struct{}

// CreateOrder вставляет один заказ и возвращает его ID.
// Статус всегда выставляется в "pending" независимо от входных данных.
func (OrdersStore) CreateOrder(ctx context.Context, order models.Order) (int64, error) {
	if !constants.IsValidMode(order.OrderType) {
		return 0, fmt.Errorf("неизвестный режим заказа: '%s'", order.OrderType)
	}

	var id int64
	query := `
        INSERT INTO orders (
            order_type, area_size, offer_amount_usd, client_name, phone,
            email, details, gps, photos, status, created_at, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
        RETURNING id`

	err := DB.QueryRowContext(ctx, query,
		order.OrderType, order.AreaSize, order.OfferAmountUSD, order.ClientName,
		order.Phone, order.Email, order.Details, order.GPS,
		pq.Array(order.Photos), constants.STATUS_PENDING,
	).Scan(&id)
	if err != nil {
		logger.Log.Error("order insert failed", zap.String("phone", order.Phone), zap.Error(err))
		return 0, err
	}

	logger.Log.Info("order created",
		zap.Int64("order_id", id),
		zap.String("mode", order.OrderType),
		zap.Float64("offer_usd", order.OfferAmountUSD),
	)
	return id, nil
}

// GetOrderByID извлекает заказ по его ID.
func (OrdersStore) GetOrderByID(ctx context.Context, orderID int64) (models.Order, error) {
	var order models.Order
	var dbCreatedAt, dbUpdatedAt sql.NullTime
	var details, gps sql.NullString

	err := DB.QueryRowContext(ctx, `
        SELECT id, order_type, area_size, offer_amount_usd, client_name, phone,
               email, details, gps, photos, status, created_at, updated_at
        FROM orders
        WHERE id = $1`, orderID).Scan(
		&order.ID, &order.OrderType, &order.AreaSize, &order.OfferAmountUSD,
		&order.ClientName, &order.Phone, &order.Email, &details, &gps,
		pq.Array(&order.Photos), &order.Status, &dbCreatedAt, &dbUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return order, ErrOrderNotFound
		}
		logger.Log.Error("order fetch failed", zap.Int64("order_id", orderID), zap.Error(err))
		return order, err
	}

	order.Details = details.String
	order.GPS = gps.String
	if dbCreatedAt.Valid {
		order.CreatedAt = dbCreatedAt.Time
	}
	if dbUpdatedAt.Valid {
		order.UpdatedAt = dbUpdatedAt.Time
	}
	return order, nil
}

// GetOrdersByStatus извлекает заказы по статусу, свежие первыми.
// Пустой статус означает все заказы.
func (OrdersStore) GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	query := `
        SELECT id, order_type, area_size, offer_amount_usd, client_name, phone,
               email, details, gps, photos, status, created_at, updated_at
        FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Log.Error("orders list failed", zap.String("status", status), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var dbCreatedAt, dbUpdatedAt sql.NullTime
		var details, gps sql.NullString
		if err := rows.Scan(
			&order.ID, &order.OrderType, &order.AreaSize, &order.OfferAmountUSD,
			&order.ClientName, &order.Phone, &order.Email, &details, &gps,
			pq.Array(&order.Photos), &order.Status, &dbCreatedAt, &dbUpdatedAt,
		); err != nil {
			logger.Log.Error("order row scan failed", zap.Error(err))
			continue
		}
		order.Details = details.String
		order.GPS = gps.String
		if dbCreatedAt.Valid {
			order.CreatedAt = dbCreatedAt.Time
		}
		if dbUpdatedAt.Valid {
			order.UpdatedAt = dbUpdatedAt.Time
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus обновляет статус заказа. Используется операторской частью.
func (OrdersStore) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	result, err := DB.ExecContext(ctx,
		"UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2", status, orderID)
	if err != nil {
		logger.Log.Error("order status update failed",
			zap.Int64("order_id", orderID), zap.String("status", status), zap.Error(err))
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	logger.Log.Info("order status updated", zap.Int64("order_id", orderID), zap.String("status", status))
	return nil
}
