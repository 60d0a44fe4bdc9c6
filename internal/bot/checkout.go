package bot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/m3rciful/storebot/internal/catalog"
	"github.com/m3rciful/storebot/internal/logger"
	"github.com/m3rciful/storebot/internal/telegram/callbacks"
	tghelpers "github.com/m3rciful/storebot/internal/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// receipt mirrors the provider_data payload the payment provider expects
// for fiscalization.
type receipt struct {
	Receipt receiptBody `json:"receipt"`
}

type receiptBody struct {
	Items []receiptItem `json:"items"`
}

type receiptItem struct {
	Description string        `json:"description"`
	Quantity    int           `json:"quantity"`
	Amount      receiptAmount `json:"amount"`
	VATCode     int           `json:"vat_code"`
}

type receiptAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// handleBuy issues an invoice for the product named in the pressed button.
// Invoice submission is the terminal action here: no order exists until the
// provider confirms payment.
func (a *App) handleBuy(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "buy")

	token := callbacks.Token(c)
	productID, err := callbacks.ParsePrefixedID(token, buyTokenPrefix)
	if err != nil {
		logger.Warn(ctx, "bot", "buy.bad_token", slog.String("cb_key", logger.SanitizeLimit(token, 128)))
		return tghelpers.SendText(c, textPaymentError)
	}

	item, ok := a.catalog.Find(productID)
	if !ok {
		logger.Warn(ctx, "bot", "buy.unknown_product", slog.Int64("product_id", productID))
		return c.EditOrSend(textUnknownProduct)
	}

	if c.Chat() == nil {
		logger.Warn(ctx, "bot", "buy.no_chat", slog.Int64("product_id", item.ID))
		return tghelpers.SendText(c, textPaymentError)
	}

	inv, err := a.BuildInvoice(item)
	if err != nil {
		logger.Error(ctx, "bot", "buy.invoice_build_failed",
			slog.Int64("product_id", item.ID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, textPaymentError)
	}

	if err := tghelpers.SendInvoice(c, &inv); err != nil {
		logger.Error(ctx, "bot", "buy.invoice_send_failed",
			slog.Int64("product_id", item.ID),
			slog.Int64("amount_minor", item.PriceMinor()),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, textPaymentError)
	}

	logger.Info(ctx, "bot", "buy.invoice_sent",
		slog.Int64("product_id", item.ID),
		slog.Int64("amount_minor", item.PriceMinor()),
	)
	return nil
}

// BuildInvoice converts a catalog item into the invoice sent to the provider.
// The payload carries the product id; the amount is in minor currency units.
func (a *App) BuildInvoice(item catalog.Item) (tele.Invoice, error) {
	currency := a.cfg.Payments.Currency

	data, err := json.Marshal(receipt{
		Receipt: receiptBody{
			Items: []receiptItem{{
				Description: item.Description,
				Quantity:    1,
				Amount: receiptAmount{
					Value:    catalog.FormatMajor(item.PriceMinor()),
					Currency: currency,
				},
				VATCode: a.cfg.Payments.VATCode,
			}},
		},
	})
	if err != nil {
		return tele.Invoice{}, fmt.Errorf("invoice provider data: %w", err)
	}

	return tele.Invoice{
		Title:       item.Name,
		Description: item.Description,
		Payload:     strconv.FormatInt(item.ID, 10),
		Currency:    currency,
		Token:       a.cfg.Payments.ProviderToken,
		Data:        string(data),
		NeedEmail:   true,
		SendEmail:   true,
		Prices: []tele.Price{{
			Label:  item.Name,
			Amount: int(item.PriceMinor()),
		}},
	}, nil
}
