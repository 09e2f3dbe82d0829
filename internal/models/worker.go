package models

import "time"

// Worker — кошелёк исполнителя из таблицы worker_balances.
type Worker struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	BalanceEGP float64   `json:"balance_egp"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
