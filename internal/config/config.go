package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Vovarama1992/aurivox/internal/speech"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"

	defaultASRURL = speech.DefaultASRURL
	defaultTTSURL = speech.DefaultTTSURL
)

type Config struct {
	TelegramToken string
	HFToken       string
	OpenAIKey     string

	ASRProvider string
	ASRURL      string
	TTSURL      string

	Port        string
	StagingDir  string
	FFmpegPath  string
	FFprobePath string

	AdminChatIDs []int64
	BotDebug     bool
}

// Load читает окружение один раз на старте.
// Ошибка — фатально; warnings — просто залогировать.
func Load() (*Config, []string, error) {
	var warnings []string

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}

	cfg := &Config{
		TelegramToken: token,
		HFToken:       os.Getenv("HUGGINGFACE_API_TOKEN"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		ASRProvider:   strings.ToLower(getenv("ASR_PROVIDER", ProviderHuggingFace)),
		ASRURL:        getenv("ASR_URL", defaultASRURL),
		TTSURL:        getenv("TTS_URL", defaultTTSURL),
		Port:          getenv("PORT", "8080"),
		StagingDir:    getenv("STAGING_DIR", filepath.Join(os.TempDir(), "aurivox")),
		FFmpegPath:    getenv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:   getenv("FFPROBE_PATH", "ffprobe"),
	}

	if cfg.HFToken == "" {
		warnings = append(warnings, "HUGGINGFACE_API_TOKEN is not set: transcription and synthesis requests will fail")
	}

	switch cfg.ASRProvider {
	case ProviderHuggingFace:
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, nil, errors.New("ASR_PROVIDER=openai requires OPENAI_API_KEY")
		}
	default:
		return nil, nil, fmt.Errorf("unknown ASR_PROVIDER %q", cfg.ASRProvider)
	}

	admins, err := parseChatIDs(os.Getenv("ADMIN_CHAT_IDS"))
	if err != nil {
		return nil, nil, err
	}
	cfg.AdminChatIDs = admins

	if v := os.Getenv("BOT_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("BOT_DEBUG=%q is not a bool, ignored", v))
		}
		cfg.BotDebug = debug
	}

	return cfg, warnings, nil
}

func parseChatIDs(raw string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_IDS entry %q: %w", part, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
