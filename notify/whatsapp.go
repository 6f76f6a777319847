package notify

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var ErrNoDestination = errors.New("no destination number configured")

const waBaseURL = "https://wa.me/"

// SanitizeNumber drops the spaces, dashes and parentheses people type into
// phone numbers, plus a leading "+".
func SanitizeNumber(number string) string {
	r := strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")
	return strings.TrimPrefix(r.Replace(number), "+")
}

// WhatsAppSink builds a click-to-chat link carrying the order text. It does
// not contact WhatsApp itself; the shopper's client opens the link.
type WhatsAppSink struct {
	BaseURL string
}

func NewWhatsAppSink() *WhatsAppSink {
	return &WhatsAppSink{BaseURL: waBaseURL}
}

func (w *WhatsAppSink) Send(ctx context.Context, destination, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	number := SanitizeNumber(destination)
	if number == "" {
		return "", ErrNoDestination
	}
	base := w.BaseURL
	if base == "" {
		base = waBaseURL
	}
	return base + number + "?text=" + encodeText(text), nil
}

// encodeText escapes like encodeURIComponent, so spaces become %20.
func encodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
