package notify

import (
	"context"
	"fmt"

	"github.com/Dan9191/finance-dashboard/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/sirupsen/logrus"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender posts alerts to a Telegram chat
type TelegramSender struct {
	bot    botSender
	chatID int64
	logger *logrus.Logger
}

// NewTelegramSender connects to the Bot API with the given token
func NewTelegramSender(token string, chatID int64, logger *logrus.Logger) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("tgbotapi.NewBotAPI: %w", err)
	}
	return &TelegramSender{bot: bot, chatID: chatID, logger: logger}, nil
}

// Notify posts the alert to the configured chat
func (t *TelegramSender) Notify(_ context.Context, alert models.Alert) error {
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("%s\n%s", subject(alert), alert.Message))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message to chat %d: %w", t.chatID, err)
	}

	t.logger.Infof("Telegram message sent to chat %d: %s", t.chatID, subject(alert))
	return nil
}
