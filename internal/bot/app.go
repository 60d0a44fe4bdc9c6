package bot

import (
	"context"

	"github.com/m3rciful/storebot/internal/catalog"
	"github.com/m3rciful/storebot/internal/config"
	"github.com/m3rciful/storebot/internal/storage"
	tg "github.com/m3rciful/storebot/internal/telegram"
	tghelpers "github.com/m3rciful/storebot/internal/telegram/helpers"
	"github.com/m3rciful/storebot/internal/telegram/middleware"
	"github.com/m3rciful/storebot/internal/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// Callback tokens placed on inline buttons. These travel over the wire
// verbatim, so changing them breaks keyboards in already-open chats.
const (
	cbMenu       = "menu"
	cbProducts   = "products"
	cbProfile    = "profile"
	cbBackToMenu = "backToMenu"

	buyTokenPrefix = "buyProduct-"
)

// UserRegistrar is the slice of the users service the handlers need.
type UserRegistrar interface {
	Register(ctx context.Context, telegramID int64, firstName, username string) (storage.UserRecord, bool, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (storage.UserRecord, error)
}

// OrderRecorder is the slice of the orders service the handlers need.
type OrderRecorder interface {
	RecordPayment(ctx context.Context, telegramID int64, payload string, totalMinor int64) (storage.OrderRecord, error)
	CountForUser(ctx context.Context, userID int64) (int64, error)
}

// App wires the storefront handlers to their collaborators.
type App struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	users   UserRegistrar
	orders  OrderRecorder
}

// New constructs the bot application.
func New(cfg *config.Config, cat *catalog.Catalog, users UserRegistrar, orders OrderRecorder) *App {
	return &App{cfg: cfg, catalog: cat, users: users, orders: orders}
}

// RunOptions assembles registry, routes and middleware for RunTelegram.
func (a *App) RunOptions() tg.RunOptions {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", tg.Command{
		Handler:     a.handleStart,
		Description: "Open the store",
	})

	_ = reg.RegisterCallback(cbMenu, a.handleMenu)
	_ = reg.RegisterCallback(cbBackToMenu, a.handleMenu)
	_ = reg.RegisterCallback(cbProducts, a.handleProducts)
	_ = reg.RegisterCallback(cbProfile, a.handleProfile)
	_ = reg.RegisterCallbackPrefix(buyTokenPrefix, a.handleBuy)

	reg.SetTextFallback(a.handleEcho)
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: textUnsupportedAction})
	})

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)
	routes = append(routes,
		tg.Route{
			Endpoint: tele.OnCheckout,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(a.handleCheckout)),
		},
		tg.Route{
			Endpoint: tele.OnPayment,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(a.handlePayment)),
		},
	)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}
}

// handleEcho repeats free-form text that matched no command back to the sender.
func (a *App) handleEcho(c tele.Context) error {
	text := c.Text()
	if text == "" {
		return nil
	}
	return tghelpers.SendText(c, text)
}
