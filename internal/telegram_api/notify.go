package telegram_api

import (
	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
)

// Notifier рассылает уведомления о новых заказах. Доставка best-effort:
// ошибки логируются и проглатываются, пользовательский флоу от них не зависит.
type Notifier struct {
	client  *BotClient
	targets []int64
}

// NewNotifier создаёт рассыльщика для списка чатов.
// client может быть nil — тогда уведомления просто не отправляются.
func NewNotifier(client *BotClient, targets []int64) *Notifier {
	return &Notifier{client: client, targets: targets}
}

// Broadcast отправляет HTML-сообщение всем целям. actionURL, если задан,
// добавляется inline-кнопкой "Take job" для рабочей группы.
func (n *Notifier) Broadcast(html string, actionURL string) {
	if n == nil || n.client == nil || len(n.targets) == 0 {
		logger.Log.Info("notification skipped, bot is not configured")
		return
	}

	for _, chatID := range n.targets {
		msg := tgbotapi.NewMessage(chatID, html)
		msg.ParseMode = tgbotapi.ModeHTML
		if actionURL != "" {
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonURL("🧹 Take job", actionURL),
				),
			)
		}
		if _, err := n.client.Send(msg); err != nil {
			// Сбой доставки не фатален и не ретраится.
			logger.Log.Warn("order notification failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}
