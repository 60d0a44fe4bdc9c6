package router

import (
	"time"

	tg "github.com/m3rciful/storebot/internal/telegram"
	"github.com/m3rciful/storebot/internal/telegram/callbacks"
	"github.com/m3rciful/storebot/internal/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the registry.
// Tokens are matched against exact registrations first and prefix
// registrations second; every callback is acknowledged before the
// handler runs.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		token := callbacks.Token(c)
		name := "callback." + normalizeHandlerName(token)
		extras := []slog.Attr{slog.String("cb_key", token)}

		_ = c.Respond()

		cbHandler, ok := reg.ResolveCallback(token)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "", "", func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
