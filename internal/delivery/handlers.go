package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"
)

type HealthHandler struct {
	log     *logger.ZapLogger
	started time.Time
}

func NewHealthHandler(log *logger.ZapLogger) *HealthHandler {
	return &HealthHandler{
		log:     log,
		started: time.Now(),
	}
}

type statusResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// GET /health
func (h *HealthHandler) Status(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(statusResponse{
		Status: "running",
		Uptime: time.Since(h.started).Round(time.Second).String(),
	})
	if err != nil && h.log != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "health encode failed", Error: err})
	}
}

// GET /ping
func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
