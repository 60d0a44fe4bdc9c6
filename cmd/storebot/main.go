package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m3rciful/storebot/internal/bot"
	"github.com/m3rciful/storebot/internal/catalog"
	"github.com/m3rciful/storebot/internal/config"
	"github.com/m3rciful/storebot/internal/database"
	"github.com/m3rciful/storebot/internal/logger"
	"github.com/m3rciful/storebot/internal/services/orders"
	"github.com/m3rciful/storebot/internal/services/users"
	"github.com/m3rciful/storebot/internal/storage"
	"github.com/m3rciful/storebot/internal/telegram"

	"log/slog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("storebot: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}

	cat, err := catalog.New(catalogItems(cfg))
	if err != nil {
		return err
	}
	logger.SVCCatalog.Info("catalog loaded",
		slog.String("event", "catalog.loaded"),
		slog.Int("products", cat.Len()),
	)

	userStore := storage.NewUsers(db)
	orderStore := storage.NewOrders(db)
	userSvc := users.New(userStore)
	orderSvc := orders.New(userStore, orderStore)

	app := bot.New(cfg, cat, userSvc, orderSvc)
	runOpts := app.RunOptions()

	startedAt := time.Now()
	runOpts.OnStart = func(ctx context.Context, rt telegram.Runtime) error {
		logger.L.With("component", "app").Info("app ready",
			slog.String("event", "ready"),
			slog.Int("products", cat.Len()),
			slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
		)
		return nil
	}
	runOpts.OnStop = func(ctx context.Context, rt telegram.Runtime) error {
		logger.L.With("component", "app").Info("shutting down...",
			slog.String("event", "shutdown"),
		)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return telegram.RunTelegram(ctx, runOpts)
}

func catalogItems(cfg *config.Config) []catalog.Item {
	items := make([]catalog.Item, 0, len(cfg.Shop.Products))
	for _, p := range cfg.Shop.Products {
		items = append(items, catalog.Item{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
		})
	}
	return items
}
