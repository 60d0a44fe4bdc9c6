package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Payments: PaymentsConfig{ProviderToken: "provider:token"},
		Database: DatabaseConfig{Host: "localhost", Name: "storebot", User: "postgres"},
		Shop: ShopConfig{Products: []ProductConfig{
			{ID: 1, Name: "Widget", Description: "A widget", Price: 100},
		}},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.Payments.Currency != "RUB" {
		t.Errorf("currency = %q, want RUB", cfg.Payments.Currency)
	}
	if cfg.Payments.VATCode != 1 {
		t.Errorf("vat_code = %d, want 1", cfg.Payments.VATCode)
	}
	if cfg.Database.Port != "5432" || cfg.Database.SSLMode != "disable" {
		t.Errorf("db defaults not applied: port=%q sslmode=%q", cfg.Database.Port, cfg.Database.SSLMode)
	}
}

func TestNormalizeRejectsMissingRequired(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"no bot token", func(c *Config) { c.Telegram.Token = "" }, "telegram token"},
		{"no provider token", func(c *Config) { c.Payments.ProviderToken = " " }, "provider_token"},
		{"no db host", func(c *Config) { c.Database.Host = "" }, "database.host"},
		{"no db name", func(c *Config) { c.Database.Name = "" }, "database.name"},
		{"no products", func(c *Config) { c.Shop.Products = nil }, "shop.products"},
		{"bad run mode", func(c *Config) { c.Telegram.RunMode = "carrier-pigeon" }, "run_mode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Normalize(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestNormalizeRejectsBadProducts(t *testing.T) {
	cfg := validConfig()
	cfg.Shop.Products = append(cfg.Shop.Products, ProductConfig{ID: 1, Name: "Copy", Price: 10})
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "duplicate product id") {
		t.Fatalf("want duplicate id error, got %v", err)
	}

	cfg = validConfig()
	cfg.Shop.Products[0].Price = 0
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "price") {
		t.Fatalf("want price error, got %v", err)
	}

	cfg = validConfig()
	cfg.Shop.Products[0].Name = "  "
	if err := Normalize(cfg); err == nil || !strings.Contains(err.Error(), "name") {
		t.Fatalf("want name error, got %v", err)
	}
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "webhook"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url")
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "webhook"
	cfg.Webhook = WebhookConfig{URL: "https://bot.example.org", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize webhook: %v", err)
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != "callback" {
		t.Errorf("exclusion not normalized: %q", cfg.RateLimit.ExcludeUpdates[0])
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclusion")
	}
}
