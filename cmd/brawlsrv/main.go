package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"brawl/internal/config"
	"brawl/internal/logging"
	"brawl/internal/network"
	"brawl/internal/room"
)

func main() {
	settings, err := config.LoadSettings(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load settings:", err)
		os.Exit(2)
	}
	closer, err := logging.Init(os.Stdout, settings.LogLevel, settings.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logging:", err)
		os.Exit(2)
	}
	defer closer.Close()

	tuning, err := config.Load(settings.TuningDir)
	if err != nil {
		slog.Error("load tuning", "dir", settings.TuningDir, "err", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	rooms := room.NewManager(tuning, slog.Default())
	srv := &http.Server{
		Addr:    settings.Addr,
		Handler: network.NewRouter(rooms, slog.Default()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "addr", settings.Addr, "ws", "/ws?room=<code>")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("serve", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	rooms.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown", "err", err)
	}
}
