package bot

import (
	"log/slog"

	"github.com/m3rciful/storebot/internal/logger"
	tghelpers "github.com/m3rciful/storebot/internal/telegram/helpers"
	"github.com/m3rciful/storebot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// handleStart registers the sender on first contact and shows the menu entry.
// Repeat /start presses are harmless: registration is a no-op for known users.
// Failures are answered with a generic reply; the handler never leaves the
// user without a response.
func (a *App) handleStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return tghelpers.SendText(c, textNoSenderError)
	}

	ctx := tghelpers.WithHandler(c, "start")
	_, created, err := a.users.Register(ctx, sender.ID, sender.FirstName, sender.Username)
	if err != nil {
		logger.Error(ctx, "bot", "start.register_failed",
			slog.Int64("user_id", sender.ID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, textTryLater)
	}

	text := textGreeting
	if !created {
		text = textWelcomeBack
	}
	return tghelpers.SendMarkup(c, text, menuEntryMarkup())
}

func menuEntryMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: textBtnMenu, Data: cbMenu},
	})
}
