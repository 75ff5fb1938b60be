package handlers

import (
	"log/slog"
	"net/http"

	"orrery-server/internal/asset"
	"orrery-server/internal/body"
	"orrery-server/internal/shared/errors"
	"orrery-server/internal/shared/response"
	"orrery-server/internal/simulation"

	"github.com/google/uuid"
)

// BodyResponse is the static appearance of a body plus its texture state
type BodyResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Kind        body.Kind       `json:"kind"`
	ParentID    *uuid.UUID      `json:"parent_id,omitempty"`
	Radius      float32         `json:"radius"`
	InnerRadius float32         `json:"inner_radius,omitempty"`
	Color       string          `json:"color"`
	SpinRate    float32         `json:"spin_rate,omitempty"`
	Texture     *asset.Resource `json:"texture,omitempty"`
	TextureLoad bool            `json:"texture_loaded"`
}

// BodyDetailResponse adds the state of the latest frame
type BodyDetailResponse struct {
	BodyResponse
	Frame    uint64      `json:"frame"`
	Position *[3]float32 `json:"position,omitempty"`
	Rotation *[3]float32 `json:"rotation,omitempty"`
}

// FrameSource returns the latest frame, nil before the first one
type FrameSource interface {
	Latest() *simulation.Frame
}

type BodiesHandler struct {
	reg     *body.Registry
	library *asset.Library
	frames  FrameSource
}

func NewBodiesHandler(reg *body.Registry, library *asset.Library, frames FrameSource) *BodiesHandler {
	return &BodiesHandler{reg: reg, library: library, frames: frames}
}

func (h *BodiesHandler) GetBodies(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_bodies")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	celestial := h.reg.Celestial()
	bodies := make([]BodyResponse, 0, len(celestial))
	for _, b := range celestial {
		bodies = append(bodies, h.describe(b))
	}

	response.Success(w, http.StatusOK, bodies)
}

func (h *BodiesHandler) GetBody(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_body")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid body ID format", err))
		return
	}

	b, ok := h.reg.ByID(id)
	if !ok || b.Kind == body.KindAsteroid {
		response.Error(w, r, logger, errors.NotFoundf("body %s not found", id))
		return
	}

	detail := BodyDetailResponse{BodyResponse: h.describe(b)}
	if frame := h.frames.Latest(); frame != nil {
		detail.Frame = frame.Number
		for _, s := range frame.Bodies {
			if s.ID == id {
				detail.Position = &s.Position
				detail.Rotation = &s.Rotation
				break
			}
		}
	}

	response.Success(w, http.StatusOK, detail)
}

func (h *BodiesHandler) describe(b *body.Body) BodyResponse {
	resp := BodyResponse{
		ID:          b.ID,
		Name:        b.Name,
		Kind:        b.Kind,
		Radius:      b.Radius,
		InnerRadius: b.InnerRadius,
		Color:       b.Color.Hex(),
		SpinRate:    b.SpinRate,
	}
	if b.Parent != nil {
		parentID := b.Parent.ID
		resp.ParentID = &parentID
	}
	if handle, ok := h.library.Texture(b.ID); ok {
		tex := handle.Current()
		resp.Texture = &tex
		resp.TextureLoad = handle.Loaded()
	}
	return resp
}
