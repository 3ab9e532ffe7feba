package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron"

	"foodbot/internal/bot"
	"foodbot/internal/catalog"
	"foodbot/internal/config"
	"foodbot/internal/db"
	"foodbot/internal/httpapi"
	"foodbot/internal/images"
	"foodbot/internal/notify"
	"foodbot/internal/orders"
	"foodbot/pkg/logger"
	"foodbot/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	log.Info("configuration loaded", "config", cfg.String())

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Error("close db", "error", err)
		}
	}()

	menuRepo := repository.NewMenuRepository(d)
	orderRepo := repository.NewOrderRepository(d)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("telegram auth: %w", err)
	}
	log.Info("authorized on telegram", "account", api.Self.UserName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := catalog.NewService(ctx, menuRepo, cfg.Menu.DefaultAdditions == config.AdditionsAll, log)
	if err != nil {
		return err
	}
	notifier := notify.NewTelegram(api, cfg.Telegram.AdminID, log)
	ord := orders.NewService(orderRepo, cat, notifier, log)

	imgs, err := images.NewStore(cfg.Images.Dir, cfg.HTTP.PublicBaseURL, log)
	if err != nil {
		return err
	}

	sessions := bot.NewSessionStore(cfg.Session.TTL)
	gateway := bot.New(api, cfg.Telegram, cat, ord, sessions, imgs, log)

	// Periodic sweep of abandoned admin sessions.
	c := cron.New()
	if err := c.AddFunc("@every 1m", func() {
		if n := sessions.Sweep(); n > 0 {
			log.Debug("expired sessions swept", "count", n)
		}
	}); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}
	c.Start()
	defer c.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		gateway.Run(ctx, updates)
	}()

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpapi.New(cat, ord, cfg.Images.Dir, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	httpErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", "address", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigc:
		log.Info("shutting down", "signal", sig.String())
	case err := <-httpErr:
		log.Error("http server failed", "error", err)
	}

	cancel()
	api.StopReceivingUpdates()
	<-botDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	return nil
}
