package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/aurivox/internal/speech"
	"github.com/Vovarama1992/aurivox/internal/voice"
)

// --------------------------------------------------
// voice.Messenger
// --------------------------------------------------

func (app *BotApp) SendText(_ context.Context, chatID int64, text string) error {
	_, err := app.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (app *BotApp) SendAudio(ctx context.Context, chatID int64, a voice.OutboundAudio) error {
	f, err := os.Open(a.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	// multipart у Bot API без MIME: тип объявляем расширением имени файла
	cfg := tgbotapi.NewAudio(chatID, tgbotapi.FileReader{Name: uploadName(a), Reader: f})
	cfg.Title = a.Title

	if app.prober != nil {
		d, err := app.prober.Duration(ctx, a.Path)
		if err != nil {
			app.log.Debug("[voice] duration probe fail", zap.String("path", a.Path), zap.Error(err))
		} else {
			cfg.Duration = int(math.Ceil(d))
		}
	}

	app.log.Debug("[voice] sending audio",
		zap.Int64("chat_id", chatID),
		zap.String("content_type", a.ContentType),
	)

	_, err = app.bot.Send(cfg)
	return err
}

func uploadName(a voice.OutboundAudio) string {
	if ext := speech.ExtensionFor(a.ContentType); ext != ".bin" {
		return "reply" + ext
	}
	return filepath.Base(a.Path)
}

// --------------------------------------------------
// voice.FileSource
// --------------------------------------------------

func (app *BotApp) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	file, err := app.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, &voice.DownloadError{FileID: fileID, Err: fmt.Errorf("get file: %w", err)}
	}
	if file.FilePath == "" {
		return nil, &voice.DownloadError{FileID: fileID, Err: errors.New("empty file path")}
	}

	url := fmt.Sprintf(app.fileEndpoint, app.token, file.FilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &voice.DownloadError{FileID: fileID, Err: err}
	}

	resp, err := app.httpCli.Do(req)
	if err != nil {
		return nil, &voice.DownloadError{FileID: fileID, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &voice.DownloadError{
			FileID:     fileID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("bad status: %s", body),
		}
	}

	return resp.Body, nil
}
