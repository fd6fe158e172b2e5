package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/chess/internal/config"
	"github.com/kiryu-dev/chess/internal/transport/ws"
	"github.com/kiryu-dev/chess/internal/usecase/game"
	"github.com/kiryu-dev/chess/internal/usecase/hub"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.Log.ZapLevel())
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	var (
		game   = game.New(logger)
		hub    = hub.New(game, cfg.Hub, logger)
		server = ws.New(hub, cfg.Server, logger)
	)
	defer hub.Close()
	errGroup, ctx := errgroup.WithContext(context.Background())
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(server.ListenAndServe)
	errGroup.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shut down the server: " + err.Error())
	}
}
