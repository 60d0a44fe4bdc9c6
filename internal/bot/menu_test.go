package bot

import (
	"strings"
	"testing"

	"github.com/m3rciful/storebot/internal/catalog"
)

func TestMenuMarkupTokens(t *testing.T) {
	markup := menuMarkup()
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 2 {
		t.Fatalf("menu layout = %v, want one row of two buttons", markup.InlineKeyboard)
	}
	if got := markup.InlineKeyboard[0][0].Data; got != cbProducts {
		t.Fatalf("first button token = %q, want %q", got, cbProducts)
	}
	if got := markup.InlineKeyboard[0][1].Data; got != cbProfile {
		t.Fatalf("second button token = %q, want %q", got, cbProfile)
	}
}

func TestMenuEntryMarkupToken(t *testing.T) {
	markup := menuEntryMarkup()
	if got := markup.InlineKeyboard[0][0].Data; got != cbMenu {
		t.Fatalf("entry button token = %q, want %q", got, cbMenu)
	}
}

func TestProductsViewBuyControls(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Name: "Widget", Description: "A widget", Price: 100},
		{ID: 3, Name: "Gadget", Description: "A gadget", Price: 250},
	}
	text, markup := productsView(items, "RUB")

	if !strings.Contains(text, "Widget") || !strings.Contains(text, "100.00 RUB") {
		t.Fatalf("rendered text missing item line: %q", text)
	}
	if !strings.Contains(text, "A gadget") {
		t.Fatalf("rendered text missing description: %q", text)
	}

	rows := markup.InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("keyboard rows = %d, want one per item plus back", len(rows))
	}
	if got := rows[0][0].Data; got != "buyProduct-1" {
		t.Fatalf("first buy token = %q, want buyProduct-1", got)
	}
	if got := rows[1][0].Data; got != "buyProduct-3" {
		t.Fatalf("second buy token = %q, want buyProduct-3", got)
	}
	if got := rows[2][0].Data; got != cbBackToMenu {
		t.Fatalf("last row token = %q, want back control", got)
	}
}
