package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"orrery-server/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Frame     uint64 `json:"frame"`
}

// StatusChecker is a backing service that can report its connection state
type StatusChecker interface {
	Status(ctx context.Context) string
}

// FrameCounter reports how many frames have been produced
type FrameCounter interface {
	FrameCount() uint64
}

type HealthHandler struct {
	db     StatusChecker
	redis  StatusChecker
	frames FrameCounter
}

func NewHealthHandler(db, redis StatusChecker, frames FrameCounter) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, frames: frames}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  h.db.Status(ctx),
		Redis:     h.redis.Status(ctx),
		Frame:     h.frames.FrameCount(),
	}

	if resp.Database == "disconnected" || resp.Redis == "disconnected" {
		resp.Status = "degraded"
		logger.Warn("Backing service unavailable", "database", resp.Database, "redis", resp.Redis)
	}

	response.Success(w, http.StatusOK, resp)
}
