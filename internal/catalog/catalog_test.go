package catalog

import "testing"

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name  string
		items []Item
	}{
		{"empty", nil},
		{"zero id", []Item{{ID: 0, Name: "X", Price: 10}}},
		{"no name", []Item{{ID: 1, Price: 10}}},
		{"zero price", []Item{{ID: 1, Name: "X", Price: 0}}},
		{"duplicate id", []Item{{ID: 1, Name: "A", Price: 10}, {ID: 1, Name: "B", Price: 20}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.items); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFindAndOrdering(t *testing.T) {
	c, err := New([]Item{
		{ID: 3, Name: "Gadget", Description: "A gadget", Price: 250},
		{ID: 1, Name: "Widget", Description: "A widget", Price: 100},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	it, ok := c.Find(1)
	if !ok || it.Name != "Widget" {
		t.Fatalf("Find(1) = %+v, %v", it, ok)
	}
	if _, ok := c.Find(2); ok {
		t.Fatal("Find(2) should miss")
	}

	items := c.Items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 3 {
		t.Fatalf("items not ordered by id: %+v", items)
	}
}

func TestPriceMinor(t *testing.T) {
	it := Item{ID: 1, Name: "Widget", Price: 100}
	if got := it.PriceMinor(); got != 10000 {
		t.Fatalf("PriceMinor = %d, want 10000", got)
	}
}

func TestFormatMajor(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{10000, "100.00"},
		{105, "1.05"},
		{99, "0.99"},
		{0, "0.00"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := FormatMajor(tc.minor); got != tc.want {
			t.Errorf("FormatMajor(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}
