package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"taskmaster/internal/server"
	"taskmaster/internal/store"
)

func runServe(cmd *cobra.Command, v *viper.Viper, configFile string) error {
	cfg, err := loadConfig(cmd, v, configFile)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", zap.String("store", cfg.Store), zap.Error(err))
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	handler := server.NewTaskHandler(st, logger, time.Now)
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           server.NewRouter(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("store", cfg.Store))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not start server", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *server.Config, logger *zap.Logger) (store.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.Store {
	case server.StoreMySQL:
		logger.Info("connecting to mysql", zap.String("host", cfg.MySQL.Host), zap.String("database", cfg.MySQL.Database))
		return store.ConnectMySQL(ctx, cfg.MySQL)
	case server.StoreSQLite:
		logger.Info("opening sqlite database", zap.String("path", cfg.SQLitePath))
		return store.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return store.NewMemory(), nil
	}
}
