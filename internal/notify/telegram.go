package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
)

type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	cb     *gobreaker.CircuitBreaker
}

func NewTelegramSender(token string, chatID int64, cb *gobreaker.CircuitBreaker) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot, chatID: chatID, cb: cb}, nil
}

func (s *TelegramSender) Send(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(s.chatID, text)

	_, err := s.cb.Execute(func() (interface{}, error) {
		return s.bot.Send(msg)
	})
	return err
}
