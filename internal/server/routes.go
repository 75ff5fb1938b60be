package server

import (
	"log/slog"
	"net/http"

	"orrery-server/internal/asset"
	bodyHandlers "orrery-server/internal/body/handlers"
	"orrery-server/internal/middleware"
	serverHandlers "orrery-server/internal/server/handlers"
	"orrery-server/internal/settings"
	settingsHandlers "orrery-server/internal/settings/handlers"
	"orrery-server/internal/shared/database"
	"orrery-server/internal/shared/redis"
	"orrery-server/internal/simulation"
	simulationHandlers "orrery-server/internal/simulation/handlers"
	"orrery-server/internal/stream"
)

type Routes struct {
	db              *database.DB
	redis           *redis.Client
	engine          *simulation.Engine
	library         *asset.Library
	settingsService *settings.Service
	hub             *stream.Hub
	controlSecret   string
	allowedOrigin   string
}

func NewRoutes(db *database.DB, rdb *redis.Client, engine *simulation.Engine, library *asset.Library,
	settingsService *settings.Service, hub *stream.Hub, controlSecret, allowedOrigin string) *Routes {
	return &Routes{
		db:              db,
		redis:           rdb,
		engine:          engine,
		library:         library,
		settingsService: settingsService,
		hub:             hub,
		controlSecret:   controlSecret,
		allowedOrigin:   allowedOrigin,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis, r.engine)
	bodiesHandler := bodyHandlers.NewBodiesHandler(r.engine.Registry(), r.library, r.engine)
	frameHandler := simulationHandlers.NewFrameHandler(r.engine)
	settingsHandler := settingsHandlers.NewSettingsHandler(r.settingsService)
	streamHandler := stream.NewHandler(r.hub, r.allowedOrigin)

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/bodies", bodiesHandler.GetBodies)
	mux.HandleFunc("GET /api/bodies/{id}", bodiesHandler.GetBody)
	mux.Handle("GET /api/frame", frameHandler)
	mux.HandleFunc("GET /api/settings", settingsHandler.GetSettings)
	mux.Handle("GET /api/stream", streamHandler)

	// Control endpoints (control token)
	mux.Handle("PUT /api/settings", middleware.RequireControl(r.controlSecret, http.HandlerFunc(settingsHandler.UpdateSettings)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/bodies", "/api/bodies/{id}", "/api/frame", "/api/settings", "/api/stream"},
		"control_endpoints", []string{"PUT /api/settings"},
	)

	return mux
}
