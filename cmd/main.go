package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Vovarama1992/aurivox/internal/config"
	"github.com/Vovarama1992/aurivox/internal/delivery"
	"github.com/Vovarama1992/aurivox/internal/inference"
	"github.com/Vovarama1992/aurivox/internal/notificator"
	"github.com/Vovarama1992/aurivox/internal/speech"
	"github.com/Vovarama1992/aurivox/internal/staging"
	"github.com/Vovarama1992/aurivox/internal/telegram"
	"github.com/Vovarama1992/aurivox/internal/transcode"
	"github.com/Vovarama1992/aurivox/internal/voice"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	_ = godotenv.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	cfg, warnings, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	for _, w := range warnings {
		zl.Log(logger.LogEntry{Level: "warn", Message: w, Service: "aurivox"})
	}

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	store := staging.NewFSStore(cfg.StagingDir)
	ffmpeg := transcode.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath)

	// без таймаута и ретраев: одна попытка на вызов
	inferenceClient := inference.NewClient(&http.Client{})

	// =========================================================================
	// CLIENTS (ASR / TTS)
	// =========================================================================

	var stt speech.Transcriber
	switch cfg.ASRProvider {
	case config.ProviderOpenAI:
		stt = speech.NewOpenAITranscriber(cfg.OpenAIKey)
	default:
		stt = speech.NewHFTranscriber(inferenceClient, cfg.ASRURL, cfg.HFToken)
	}
	tts := speech.NewHFSynthesizer(inferenceClient, cfg.TTSURL, cfg.HFToken)

	speechService := speech.NewService(stt, tts)

	// =========================================================================
	// TELEGRAM
	// =========================================================================

	api, err := telegram.NewBotAPI(cfg.TelegramToken, cfg.BotDebug)
	if err != nil {
		log.Fatalf("failed to init telegram bot: %v", err)
	}

	botApp := telegram.NewBotApp(api, ffmpeg, baseLogger)

	errService := notificator.NewService(notificator.NewInfra(api, cfg.AdminChatIDs))

	pipeline := voice.NewPipeline(
		botApp, // FileSource
		botApp, // Messenger
		store,
		ffmpeg,
		speechService,
		speechService,
		errService,
		baseLogger,
	)
	botApp.SetPipeline(pipeline)

	go botApp.Run()

	// =========================================================================
	// HTTP (liveness)
	// =========================================================================

	r := delivery.NewRouter(delivery.NewHealthHandler(zl))

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r}

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "Aurivox bot is running in polling mode, listening at " + addr,
		Service: "aurivox",
	})

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// =========================================================================
	// SHUTDOWN
	// =========================================================================

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	zl.Log(logger.LogEntry{Level: "info", Message: "shutting down", Service: "aurivox"})

	// новые апдейты не берём; задачи в полёте досчитываются в своих горутинах
	botApp.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Log(logger.LogEntry{Level: "error", Message: "http shutdown", Error: err, Service: "aurivox"})
	}
}
