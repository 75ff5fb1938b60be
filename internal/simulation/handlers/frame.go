package handlers

import (
	"log/slog"
	"net/http"

	"orrery-server/internal/shared/errors"
	"orrery-server/internal/shared/response"
	"orrery-server/internal/simulation"
)

type FrameHandler struct {
	engine *simulation.Engine
}

func NewFrameHandler(engine *simulation.Engine) *FrameHandler {
	return &FrameHandler{engine: engine}
}

func (h *FrameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "frame")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	frame := h.engine.Latest()
	if frame == nil {
		response.Error(w, r, logger, errors.NotFoundf("no frame has been rendered yet"))
		return
	}

	response.Success(w, http.StatusOK, frame)
}
