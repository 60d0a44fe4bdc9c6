package keyboard

import "testing"

func TestInlineButtonsOnePerRow(t *testing.T) {
	markup := InlineButtons([]InlineBtn{
		{Text: "Products", Data: "products"},
		{Text: "Profile", Data: "profile"},
	})
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	if got := markup.InlineKeyboard[0][0].Data; got != "products" {
		t.Fatalf("first button data = %q, want literal token", got)
	}
}

func TestInlineButtonsDataIsLiteral(t *testing.T) {
	markup := InlineButtons([]InlineBtn{{Text: "Buy", Data: "buyProduct-3"}})
	btn := markup.InlineKeyboard[0][0]
	if btn.Data != "buyProduct-3" {
		t.Fatalf("data = %q, want raw token without framing", btn.Data)
	}
	if btn.Unique != "" {
		t.Fatalf("unique = %q, want empty for raw-data buttons", btn.Unique)
	}
}

func TestInlineButtonsNPerRow(t *testing.T) {
	buttons := []InlineBtn{
		{Text: "a", Data: "a"}, {Text: "b", Data: "b"}, {Text: "c", Data: "c"},
	}
	markup := InlineButtonsNPerRow(buttons, 2)
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 2 || len(markup.InlineKeyboard[1]) != 1 {
		t.Fatalf("row sizes = %d,%d, want 2,1", len(markup.InlineKeyboard[0]), len(markup.InlineKeyboard[1]))
	}
}
