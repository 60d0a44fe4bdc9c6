package bot

import (
	"encoding/json"
	"testing"

	"github.com/m3rciful/storebot/internal/catalog"
	"github.com/m3rciful/storebot/internal/config"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cat, err := catalog.New([]catalog.Item{
		{ID: 1, Name: "Widget", Description: "A widget", Price: 100},
		{ID: 3, Name: "Gadget", Description: "A gadget", Price: 250},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	cfg := &config.Config{}
	cfg.Payments.ProviderToken = "381764678:TEST:12345"
	cfg.Payments.Currency = "RUB"
	cfg.Payments.VATCode = 1
	return New(cfg, cat, nil, nil)
}

func TestBuildInvoiceAmountAndPayload(t *testing.T) {
	app := testApp(t)

	item, ok := app.catalog.Find(1)
	if !ok {
		t.Fatal("item 1 missing from catalog")
	}
	inv, err := app.BuildInvoice(item)
	if err != nil {
		t.Fatalf("build invoice: %v", err)
	}

	if inv.Payload != "1" {
		t.Fatalf("payload = %q, want product id as string", inv.Payload)
	}
	if len(inv.Prices) != 1 {
		t.Fatalf("prices = %d entries, want 1", len(inv.Prices))
	}
	if inv.Prices[0].Amount != 10000 {
		t.Fatalf("amount = %d minor units, want 10000", inv.Prices[0].Amount)
	}
	if inv.Prices[0].Label != "Widget" {
		t.Fatalf("label = %q, want item name", inv.Prices[0].Label)
	}
	if inv.Title != "Widget" || inv.Description != "A widget" {
		t.Fatalf("title/description = %q/%q", inv.Title, inv.Description)
	}
	if inv.Currency != "RUB" {
		t.Fatalf("currency = %q, want RUB", inv.Currency)
	}
	if inv.Token != "381764678:TEST:12345" {
		t.Fatalf("token = %q, want provider token", inv.Token)
	}
	if !inv.NeedEmail || !inv.SendEmail {
		t.Fatal("invoice must request and forward the buyer email")
	}
}

func TestBuildInvoiceReceipt(t *testing.T) {
	app := testApp(t)

	item, _ := app.catalog.Find(3)
	inv, err := app.BuildInvoice(item)
	if err != nil {
		t.Fatalf("build invoice: %v", err)
	}

	var r receipt
	if err := json.Unmarshal([]byte(inv.Data), &r); err != nil {
		t.Fatalf("provider data is not valid JSON: %v", err)
	}
	if len(r.Receipt.Items) != 1 {
		t.Fatalf("receipt items = %d, want 1", len(r.Receipt.Items))
	}
	got := r.Receipt.Items[0]
	if got.Description != "A gadget" {
		t.Fatalf("description = %q, want item description", got.Description)
	}
	if got.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", got.Quantity)
	}
	if got.Amount.Value != "250.00" {
		t.Fatalf("amount value = %q, want major units with two decimals", got.Amount.Value)
	}
	if got.Amount.Currency != "RUB" {
		t.Fatalf("amount currency = %q, want RUB", got.Amount.Currency)
	}
	if got.VATCode != 1 {
		t.Fatalf("vat code = %d, want 1", got.VATCode)
	}
}
