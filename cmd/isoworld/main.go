package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"isoworld/internal/agent"
	"isoworld/internal/config"
	"isoworld/internal/engine"
	"isoworld/internal/infrastructure/storage"
	"isoworld/internal/network"
	"isoworld/internal/providers"
	"isoworld/internal/render"
	"isoworld/internal/server"
	"isoworld/internal/version"
	"isoworld/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Конфигурация: .env, окружение, флаги
	cfg, err := config.Load(".env")
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		logger.Log.WithError(err).Fatal("Invalid config")
	}

	logger.Log.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := engine.Options{
		Overdraw:     cfg.Overdraw,
		Acceleration: cfg.Acceleration,
		Damping:      cfg.Damping,
		Factory:      providers.New,
	}

	// РЕЖИМ РЕПЛЕЯ: без окна, только прогон записи
	if cfg.ReplayPath != "" {
		runReplay(ctx, cfg.ReplayPath, opts)
		return
	}

	if err := run(ctx, cfg, opts); err != nil {
		logger.Log.WithError(err).Fatal("isoworld stopped with error")
	}
	logger.Log.Info("Done.")
}

func runReplay(ctx context.Context, path string, opts engine.Options) {
	logger.Log.WithField("path", path).Info("Mode: Replay Simulation")

	session, err := storage.Load(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load recording")
	}
	sum, err := engine.Replay(ctx, session, providers.New, opts)
	if err != nil {
		logger.Log.WithError(err).Fatal("Replay failed")
	}
	logger.Log.WithFields(logrus.Fields{
		"frames":   sum.Frames,
		"provider": sum.Provider,
		"key":      sum.Key,
		"camera_x": sum.CameraX,
		"camera_y": sum.CameraY,
	}).Info("Replay finished")
}

func run(ctx context.Context, cfg config.Config, opts engine.Options) error {
	p, err := providers.New(cfg.Provider)
	if err != nil {
		return err
	}

	surface, err := render.NewSurface(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	e := engine.New(surface, p, opts)
	defer e.Close()
	e.Init(cfg.WorldKey)

	// Запись сессии
	if cfg.RecordPath != "" {
		rec, err := storage.Create(cfg.RecordPath, storage.Session{
			Timestamp: time.Now().Unix(),
			Width:     cfg.Width,
			Height:    cfg.Height,
			Provider:  cfg.Provider,
			Key:       cfg.WorldKey,
		})
		if err != nil {
			return err
		}
		e.SetRecorder(rec)
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Log.WithError(err).Error("Failed to finish recording")
				return
			}
			logger.Log.WithFields(logrus.Fields{
				"path":   cfg.RecordPath,
				"events": rec.Count(),
			}).Info("Recording saved")
		}()
	}

	game := render.NewGame(e, surface, cfg.TPS, providers.Names())

	var wg sync.WaitGroup
	serverCtx, cancelServer := context.WithCancel(ctx)
	defer func() {
		cancelServer()
		wg.Wait()
	}()

	var hub *network.Broadcaster
	if cfg.DebugAddr != "" || cfg.Demo > 0 {
		hub = network.NewBroadcaster(cfg.SnapshotEvery)
		e.SetPublisher(hub)
	}

	// Отладочный сервер
	if cfg.DebugAddr != "" {
		srv := server.New(e, hub, cfg.DebugAddr)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(serverCtx); err != nil {
				logger.Log.WithError(err).Error("Debug server error")
			}
		}()
	}

	// Демо-агент
	if cfg.Demo > 0 {
		bot := agent.NewBot(e, hub, cfg.Demo)
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.Run(serverCtx)
		}()
	}

	// Graceful Shutdown: сигнал закрывает окно
	go func() {
		<-ctx.Done()
		game.Stop()
	}()

	logger.Log.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"key":      cfg.WorldKey,
		"size":     [2]int{cfg.Width, cfg.Height},
	}).Info("Opening window")
	return render.Run(game, version.Title())
}
