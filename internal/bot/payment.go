package bot

import (
	"errors"
	"log/slog"

	"github.com/m3rciful/storebot/internal/logger"
	"github.com/m3rciful/storebot/internal/services/orders"
	"github.com/m3rciful/storebot/internal/storage"
	tghelpers "github.com/m3rciful/storebot/internal/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// handleCheckout answers pre-checkout queries. Every query is accepted.
func (a *App) handleCheckout(c tele.Context) error {
	return c.Accept()
}

// handlePayment records a confirmed payment as an order and thanks the buyer.
func (a *App) handlePayment(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "payment")

	msg := c.Message()
	sender := c.Sender()
	if msg == nil || msg.Payment == nil || sender == nil {
		logger.Warn(ctx, "bot", "payment.invalid_update")
		return tghelpers.SendText(c, textPaymentError)
	}

	pay := msg.Payment
	order, err := a.orders.RecordPayment(ctx, sender.ID, pay.Payload, int64(pay.Total))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			logger.Warn(ctx, "bot", "payment.user_not_found", slog.Int64("user_id", sender.ID))
			return tghelpers.SendText(c, textUserNotFound)
		case errors.Is(err, orders.ErrBadPayload):
			logger.Warn(ctx, "bot", "payment.bad_payload",
				slog.String("payload", logger.SanitizeLimit(pay.Payload, 64)),
			)
			return tghelpers.SendText(c, textPaymentError)
		default:
			logger.Error(ctx, "bot", "payment.record_failed",
				slog.Int64("user_id", sender.ID),
				slog.String("err", err.Error()),
			)
			return tghelpers.SendText(c, textOrderSaveError)
		}
	}

	logger.Info(ctx, "bot", "payment.recorded",
		slog.Int64("order_id", order.ID),
		slog.Int64("product_id", order.ProductID),
		slog.Int64("amount_minor", order.PriceMinor),
		slog.String("currency", pay.Currency),
	)
	return tghelpers.SendMarkup(c, textPaymentDone, menuEntryMarkup())
}
