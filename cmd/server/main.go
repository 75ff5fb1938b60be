package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orrery-server/internal/asset"
	"orrery-server/internal/body"
	"orrery-server/internal/middleware"
	"orrery-server/internal/pick"
	"orrery-server/internal/server"
	"orrery-server/internal/settings"
	"orrery-server/internal/shared/config"
	"orrery-server/internal/shared/database"
	"orrery-server/internal/shared/logger"
	"orrery-server/internal/shared/redis"
	"orrery-server/internal/simulation"
	"orrery-server/internal/stream"

	"cogentcore.org/core/math32"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if db != nil {
		if err := db.RunMigrations(ctx); err != nil {
			return err
		}
	}

	rdb, err := redis.Connect(cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close Redis", "error", err)
		}
	}()

	var store settings.Store = settings.NewMemoryStore()
	if rdb != nil {
		store = settings.NewRedisStore(rdb.Client)
	}
	settingsService := settings.NewService(store, slog.Default())
	if err := settingsService.Init(ctx); err != nil {
		return err
	}

	seed := cfg.Simulation.AsteroidSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	belt := body.DefaultBelt()
	belt.Count = cfg.Simulation.AsteroidCount

	bodyService := body.NewService(db, slog.Default())
	reg, err := bodyService.BuildRegistry(ctx, belt, rand.New(rand.NewPCG(seed, seed>>1)))
	if err != nil {
		return err
	}
	log.Info("Session seeded", "seed", seed)

	library := asset.NewLibrary(asset.NewLoader(os.DirFS(cfg.Simulation.AssetDir)), reg, cfg.Simulation.EnvironmentMap, slog.Default())
	library.Start(ctx)

	session := simulation.NewSession(pick.Viewport{Width: 1280, Height: 720})
	hub := stream.NewHub(cfg.Simulation.StreamRate, session, slog.Default())
	engine := simulation.NewEngine(reg, hub, library.Environment(), slog.Default())
	scheduler := simulation.NewScheduler(engine, session, settingsService, cameraFromConfig(cfg.Camera), cfg.Simulation.FrameRate, slog.Default())

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- scheduler.Run(ctx)
	}()

	routes := server.NewRoutes(db, rdb, engine, library, settingsService, hub, cfg.Auth.ControlSecret, cfg.Frontend.URL)
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)
	cors := middleware.NewCORS(cfg.Frontend)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      cors.Middleware(rateLimiter.Middleware(routes.Setup())),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Orrery server starting", "addr", srv.Addr, "url", cfg.Server.URL, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case err := <-loopDone:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stop()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
	library.Wait()

	log.Info("Server stopped")
	return nil
}

func cameraFromConfig(c config.CameraConfig) pick.Camera {
	cam := pick.DefaultCamera()
	cam.FOV = float32(c.FOV)
	cam.Near = float32(c.Near)
	cam.Far = float32(c.Far)
	cam.Position = math32.Vec3(float32(c.PositionX), float32(c.PositionY), float32(c.PositionZ))
	cam.Target = math32.Vec3(cam.Position.X, cam.Position.Y, 0)
	return cam
}
