package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/aurivox/internal/voice"
)

func (app *BotApp) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	job := voice.NewJob(chatID, msg.Voice.FileID, msg.Voice.FileUniqueID)

	app.log.Info("[voice] received",
		zap.String("job_id", job.ID),
		zap.Int64("chat_id", chatID),
		zap.Int("duration_sec", msg.Voice.Duration),
	)

	if app.pipeline == nil {
		app.log.Error("[voice] pipeline not set", zap.String("job_id", job.ID))
		app.sendText(chatID, tgbotapi.NewMessage(chatID, voice.MsgApology))
		return
	}

	// индикатор "записывает голосовое…"
	if _, err := app.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatRecordVoice)); err != nil {
		app.log.Debug("[voice] chat action fail", zap.Error(err))
	}

	// ошибка уже залогирована и доставлена пользователю внутри пайплайна
	_ = app.pipeline.Run(ctx, job)
}
