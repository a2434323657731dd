package telegram

import (
	"context"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/aurivox/internal/voice"
)

// botAPI — то, что нам нужно от *tgbotapi.BotAPI.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

type VoiceRunner interface {
	Run(ctx context.Context, job *voice.Job) error
}

type durationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

type BotApp struct {
	api   *tgbotapi.BotAPI
	bot   botAPI
	token string

	pipeline VoiceRunner
	prober   durationProber
	httpCli  *http.Client
	log      *zap.Logger

	// https://api.telegram.org/file/bot%s/%s
	fileEndpoint string
}

func NewBotAPI(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug
	return api, nil
}

func NewBotApp(api *tgbotapi.BotAPI, prober durationProber, log *zap.Logger) *BotApp {
	app := newBotApp(api, api.Token, prober, log)
	app.api = api
	return app
}

func newBotApp(bot botAPI, token string, prober durationProber, log *zap.Logger) *BotApp {
	if log == nil {
		log = zap.NewNop()
	}
	return &BotApp{
		bot:          bot,
		token:        token,
		prober:       prober,
		httpCli:      &http.Client{},
		log:          log,
		fileEndpoint: tgbotapi.FileEndpoint,
	}
}

// SetPipeline — пайплайн собирается после BotApp (ему нужен BotApp как Messenger и FileSource).
func (app *BotApp) SetPipeline(p VoiceRunner) {
	app.pipeline = p
}

// Run — главный цикл получения апдейтов. Каждый апдейт в своей горутине.
func (app *BotApp) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := app.api.GetUpdatesChan(u)
	app.log.Info("[bot_loop] started", zap.String("username", "@"+app.api.Self.UserName))

	for update := range updates {
		go app.routeUpdate(context.Background(), update)
	}
}

func (app *BotApp) Stop() {
	if app.api != nil {
		app.api.StopReceivingUpdates()
	}
}
