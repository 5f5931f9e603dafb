package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"treathunt/accounts"
	"treathunt/config"
	"treathunt/game"
	"treathunt/network"
	"treathunt/room"
	"treathunt/session"
)

var (
	envFile  = flag.String("env", ".env", "Environment file to load")
	addr     = flag.String("addr", "", "Listen address (overrides TREATHUNT_ADDR)")
	logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides TREATHUNT_LOG_LEVEL)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.InitConfig(*envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		if cfg.LogLevel, err = config.ParseLevel(*logLevel); err != nil {
			return err
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store, err := accounts.Open(cfg.AccountsPath)
	if err != nil {
		return fmt.Errorf("open accounts: %w", err)
	}

	roster := game.NewRoster()
	rooms := room.NewRegistry(roster)
	coord := session.New(roster, rooms, logger)
	go coord.Run()
	defer coord.Stop()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: network.NewRouter(network.Options{
			Coordinator: coord,
			Rooms:       rooms,
			Accounts:    store,
			StaticDir:   cfg.StaticDir,
			SendBuffer:  cfg.SendBuffer,
			Logger:      logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "ws", "/ws")
		errc <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown incomplete", "err", err)
	}
	return nil
}
