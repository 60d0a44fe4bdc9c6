package telegram

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegistryExactCallbackResolution(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("products", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := reg.ResolveCallback("products"); !ok {
		t.Fatal("exact token did not resolve")
	}
	if _, ok := reg.ResolveCallback("unknown"); ok {
		t.Fatal("unknown token resolved")
	}
}

func TestRegistryPrefixCallbackResolution(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallbackPrefix("buyProduct-", noop); err != nil {
		t.Fatalf("register prefix: %v", err)
	}
	for _, token := range []string{"buyProduct-1", "buyProduct-42", "buyProduct-abc"} {
		if _, ok := reg.ResolveCallback(token); !ok {
			t.Errorf("token %q did not resolve via prefix", token)
		}
	}
	if _, ok := reg.ResolveCallback("buyProduc"); ok {
		t.Fatal("partial prefix resolved")
	}
}

func TestRegistryExactWinsOverPrefix(t *testing.T) {
	reg := NewRegistry()
	var hit string
	_ = reg.RegisterCallbackPrefix("buy", func(tele.Context) error { hit = "prefix"; return nil })
	_ = reg.RegisterCallback("buyAll", func(tele.Context) error { hit = "exact"; return nil })

	h, ok := reg.ResolveCallback("buyAll")
	if !ok {
		t.Fatal("token did not resolve")
	}
	_ = h(nil)
	if hit != "exact" {
		t.Fatalf("resolved %s handler, want exact", hit)
	}
}

func TestRegistryLongestPrefixWins(t *testing.T) {
	reg := NewRegistry()
	var hit string
	_ = reg.RegisterCallbackPrefix("buy", func(tele.Context) error { hit = "short"; return nil })
	_ = reg.RegisterCallbackPrefix("buyProduct-", func(tele.Context) error { hit = "long"; return nil })

	h, ok := reg.ResolveCallback("buyProduct-3")
	if !ok {
		t.Fatal("token did not resolve")
	}
	_ = h(nil)
	if hit != "long" {
		t.Fatalf("resolved %s prefix, want longest", hit)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("menu", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterCallback("menu", noop); err == nil {
		t.Fatal("duplicate exact registration accepted")
	}
	if err := reg.RegisterCallbackPrefix("buyProduct-", noop); err != nil {
		t.Fatalf("register prefix: %v", err)
	}
	if err := reg.RegisterCallbackPrefix("buyProduct-", noop); err == nil {
		t.Fatal("duplicate prefix registration accepted")
	}
}

func TestRegistryCommandMenu(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", Command{Handler: noop, Description: "Open the shop"})
	reg.RegisterCommand("/debug", Command{Handler: noop, Description: "Internal", Hidden: true})
	reg.RegisterCommand("start", Command{Handler: noop, Description: "No slash"})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible commands = %+v, want only /start", visible)
	}
	if _, _, ok := reg.LookupCommand("start"); !ok {
		t.Fatal("lookup without slash failed")
	}
}
