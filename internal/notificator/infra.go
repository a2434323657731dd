package notificator

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Infra struct {
	bot    sender
	admins []int64
}

func NewInfra(bot *tgbotapi.BotAPI, admins []int64) *Infra {
	return &Infra{bot: bot, admins: admins}
}

// Notify — алерт всем админам. Нет админов → ничего не делаем.
func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	if len(i.admins) == 0 || i.bot == nil {
		return nil
	}

	text := fmt.Sprintf(
		"❗ Aurivox error\n\nError: %v\n\nDetails: %s",
		err,
		details,
	)
	// лимит телеграма на сообщение
	if len(text) > 4000 {
		text = strings.ToValidUTF8(text[:4000], "") + "…"
	}

	var firstErr error
	for _, chatID := range i.admins {
		if _, sendErr := i.bot.Send(tgbotapi.NewMessage(chatID, text)); sendErr != nil && firstErr == nil {
			firstErr = fmt.Errorf("notify admin %d: %w", chatID, sendErr)
		}
	}

	return firstErr
}
