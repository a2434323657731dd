package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	MsgWelcome   = "👋 Welcome to Aurivox! Send me a voice note and I’ll reply with AI speech."
	MsgHelp      = "🎙 Record a voice note and send it here.\nI’ll send back the transcription and read it aloud with an AI voice."
	MsgSendVoice = "🎙 Send me a voice note."

	btnHelp = "❓ Help"
)

func (app *BotApp) routeUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	var fromID int64
	if msg.From != nil {
		fromID = msg.From.ID
	}
	app.log.Debug("[bot_touch]",
		zap.Int("update_id", upd.UpdateID),
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Int64("from_id", fromID),
	)

	app.handleMessage(ctx, msg)
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch {
	case msg.Voice != nil:
		app.handleVoice(ctx, msg)

	case msg.IsCommand() && msg.Command() == "start":
		out := tgbotapi.NewMessage(chatID, MsgWelcome)
		out.ReplyMarkup = mainKeyboard()
		app.sendText(chatID, out)

	case msg.IsCommand() && msg.Command() == "help",
		strings.TrimSpace(msg.Text) == btnHelp:
		app.sendText(chatID, tgbotapi.NewMessage(chatID, MsgHelp))

	default:
		app.sendText(chatID, tgbotapi.NewMessage(chatID, MsgSendVoice))
	}
}

func (app *BotApp) sendText(chatID int64, m tgbotapi.MessageConfig) {
	if _, err := app.bot.Send(m); err != nil {
		app.log.Warn("[bot] send fail", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
