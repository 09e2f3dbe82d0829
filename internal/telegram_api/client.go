package telegram_api

import (
	"fmt"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
)

// BotClient — обёртка над Telegram Bot API. Бот используется только для
// отправки уведомлений операторам и рабочей группе, канал обновлений
// не читается: диалогового бота у продукта нет.
type BotClient struct {
	api   *tgbotapi.BotAPI
	Debug bool
}

// Client — глобальный экземпляр бота для пакета.
var Client *BotClient

// InitBot инициализирует Telegram бота.
func InitBot(token string, debug bool) error {
	if token == "" {
		return fmt.Errorf("токен Telegram API не предоставлен")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("ошибка инициализации Telegram Bot API: %w", err)
	}
	api.Debug = debug

	logger.Log.Info("telegram bot authorized", zap.String("username", api.Self.UserName))

	Client = &BotClient{api: api, Debug: debug}
	return nil
}

// Send отправляет сообщение через BotClient.
func (bc *BotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if bc == nil || bc.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}
	if bc.Debug {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			logger.Log.Debug("sending telegram message",
				zap.Int64("chat_id", msg.ChatID), zap.String("text", truncate(msg.Text, 50)))
		}
	}
	return bc.api.Send(c)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
