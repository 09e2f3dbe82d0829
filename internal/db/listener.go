package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
)

// balancePayload — снимок строки worker_balances из pg_notify.
type balancePayload struct {
	ID         int64   `json:"id"`
	TelegramID int64   `json:"telegram_id"`
	Name       string  `json:"name"`
	BalanceEGP float64 `json:"balance_egp"`
	IsVerified bool    `json:"is_verified"`
}

// SubscribeWorkerBalances подписывается на канал BalanceNotifyChannel и
// отдаёт поток снимков кошельков. Подписчик получает и изменения,
// сделанные в обход сервиса (триггер стоит на самой таблице).
// Канал закрывается при отмене ctx.
func SubscribeWorkerBalances(ctx context.Context, databaseURL string) (<-chan models.Worker, error) {
	listener := pq.NewListener(databaseURL, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Log.Warn("balance listener event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})

	if err := listener.Listen(BalanceNotifyChannel); err != nil {
		listener.Close()
		return nil, err
	}

	updates := make(chan models.Worker)
	go func() {
		defer close(updates)
		defer listener.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				// pq шлёт nil после переподключения
				if n == nil {
					continue
				}
				var payload balancePayload
				if err := json.Unmarshal([]byte(n.Extra), &payload); err != nil {
					logger.Log.Warn("balance notification decode failed", zap.Error(err))
					continue
				}
				worker := models.Worker{
					ID:         payload.ID,
					TelegramID: payload.TelegramID,
					Name:       payload.Name,
					BalanceEGP: payload.BalanceEGP,
					IsVerified: payload.IsVerified,
				}
				select {
				case updates <- worker:
				case <-ctx.Done():
					return
				}
			case <-time.After(90 * time.Second):
				// Периодическая проверка живости соединения.
				go listener.Ping()
			}
		}
	}()

	return updates, nil
}
