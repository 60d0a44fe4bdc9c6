package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/storebot/internal/catalog"
	"github.com/m3rciful/storebot/internal/logger"
	"github.com/m3rciful/storebot/internal/storage"
	tghelpers "github.com/m3rciful/storebot/internal/telegram/helpers"
	"github.com/m3rciful/storebot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// handleMenu renders the main menu. It serves both the "menu" token from the
// greeting keyboard and the "backToMenu" token from inner views.
func (a *App) handleMenu(c tele.Context) error {
	return tghelpers.EditOrSendMarkup(c, textMenu, menuMarkup())
}

func menuMarkup() *tele.ReplyMarkup {
	// Both navigation options fit on a single row.
	return keyboard.InlineButtonsNPerRow([]keyboard.InlineBtn{
		{Text: textBtnProducts, Data: cbProducts},
		{Text: textBtnProfile, Data: cbProfile},
	}, 2)
}

// handleProducts renders the catalog with one buy control per item.
func (a *App) handleProducts(c tele.Context) error {
	text, markup := productsView(a.catalog.Items(), a.cfg.Payments.Currency)
	return tghelpers.EditOrSendMarkup(c, text, markup)
}

func productsView(items []catalog.Item, currency string) (string, *tele.ReplyMarkup) {
	var sb strings.Builder
	sb.WriteString(textProducts)
	for _, item := range items {
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("%s - %s %s\n%s",
			item.Name,
			catalog.FormatMajor(item.PriceMinor()),
			currency,
			item.Description,
		))
	}

	buttons := make([]keyboard.InlineBtn, 0, len(items)+1)
	for _, item := range items {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: fmt.Sprintf("%s %s", textBtnBuy, item.Name),
			Data: fmt.Sprintf("%s%d", buyTokenPrefix, item.ID),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{Text: textBtnBack, Data: cbBackToMenu})

	return sb.String(), keyboard.InlineButtons(buttons)
}

// handleProfile renders the sender's registration info.
func (a *App) handleProfile(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx := tghelpers.WithHandler(c, "profile")
	user, err := a.users.GetByTelegramID(ctx, sender.ID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return tghelpers.EditOrSendMarkup(c, textUserNotFound, backMarkup())
		}
		return fmt.Errorf("profile: %w", err)
	}

	// The rendered text claims no orders regardless of history; the real
	// count only goes to the log until a history view exists.
	if n, cerr := a.orders.CountForUser(ctx, user.ID); cerr == nil && n > 0 {
		logger.Debug(ctx, "bot", "profile.orders_hidden", slog.Int64("order_count", n))
	}

	text := fmt.Sprintf("%s\nRegistered: %s\n%s",
		profileName(user),
		user.CreatedAt.Format("02.01.2006"),
		textProfileNoOrders,
	)
	return tghelpers.EditOrSendMarkup(c, text, backMarkup())
}

func profileName(user storage.UserRecord) string {
	if user.Username != "" {
		return fmt.Sprintf("%s (@%s)", user.FirstName, user.Username)
	}
	return user.FirstName
}

func backMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: textBtnBack, Data: cbBackToMenu},
	})
}
