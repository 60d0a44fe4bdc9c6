package storage

import "testing"

func TestNewUserValidate(t *testing.T) {
	if err := (NewUser{TelegramID: 42, FirstName: "Ann"}).validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}
	if err := (NewUser{TelegramID: 0}).validate(); err == nil {
		t.Fatal("missing telegram_id accepted")
	}
	if err := (NewUser{TelegramID: -1}).validate(); err == nil {
		t.Fatal("negative telegram_id accepted")
	}
	// Name and username are optional: Telegram does not guarantee either.
	if err := (NewUser{TelegramID: 42}).validate(); err != nil {
		t.Fatalf("user without name rejected: %v", err)
	}
}

func TestNewOrderValidate(t *testing.T) {
	valid := NewOrder{UserID: 1, ProductID: 2, PriceMinor: 10000}
	if err := valid.validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	cases := []struct {
		name  string
		order NewOrder
	}{
		{"no user", NewOrder{ProductID: 2, PriceMinor: 100}},
		{"no product", NewOrder{UserID: 1, PriceMinor: 100}},
		{"zero price", NewOrder{UserID: 1, ProductID: 2}},
		{"negative price", NewOrder{UserID: 1, ProductID: 2, PriceMinor: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.order.validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
