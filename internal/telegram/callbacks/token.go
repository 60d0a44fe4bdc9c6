package callbacks

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Token returns the literal callback data of the current update.
// Buttons built by the keyboard package put tokens on the wire verbatim,
// but Telebot-framed data (\f<unique>|<payload>) is unwrapped too so
// foreign keyboards do not break routing.
func Token(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	raw = strings.TrimPrefix(raw, "\\f")
	return strings.TrimSpace(raw)
}

// ParsePrefixedID extracts the numeric suffix of a token like "buyProduct-3".
// The suffix must be a positive base-10 integer with no extra characters.
func ParsePrefixedID(token, prefix string) (int64, error) {
	rest, ok := strings.CutPrefix(token, prefix)
	if !ok {
		return 0, fmt.Errorf("callbacks: token %q lacks prefix %q", token, prefix)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("callbacks: token %q: bad id: %w", token, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("callbacks: token %q: non-positive id", token)
	}
	return id, nil
}
