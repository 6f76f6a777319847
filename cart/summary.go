package cart

import (
	"fmt"
	"strings"
)

type PriceLineKind string

const (
	PriceLineSubtotal PriceLineKind = "subtotal"
	PriceLineDiscount PriceLineKind = "discount"
	PriceLineShipping PriceLineKind = "shipping"
	PriceLineTotal    PriceLineKind = "total"
)

// PriceLine is one row of the price breakdown.
type PriceLine struct {
	Kind   PriceLineKind `json:"kind"`
	Label  string        `json:"label"`
	Amount int64         `json:"amount"`
	Text   string        `json:"text"`
}

// priceLines renders totals as decorated rows. Discounts with a zero amount
// are omitted.
func (e *Engine) priceLines(t Totals) []PriceLine {
	fp := e.cfg.FormatPrice
	lines := []PriceLine{{
		Kind:   PriceLineSubtotal,
		Label:  "Subtotal",
		Amount: t.RawSubtotal,
		Text:   "Subtotal: " + fp(t.RawSubtotal),
	}}
	for _, d := range t.Discounts {
		if d.Amount <= 0 {
			continue
		}
		label := fmt.Sprintf("%s (%d%%)", d.Label, d.Percent)
		lines = append(lines, PriceLine{
			Kind:   PriceLineDiscount,
			Label:  label,
			Amount: d.Amount,
			Text:   fmt.Sprintf("%s: -%s", label, fp(d.Amount)),
		})
	}
	shipping := PriceLine{Kind: PriceLineShipping, Label: "Shipping", Amount: t.Shipping, Text: "Shipping: FREE"}
	if t.Shipping > 0 {
		shipping.Text = "Shipping: " + fp(t.Shipping)
	}
	lines = append(lines, shipping, PriceLine{
		Kind:   PriceLineTotal,
		Label:  "Total",
		Amount: t.Total,
		Text:   "*TOTAL: " + fp(t.Total) + "*",
	})

	for i := range lines {
		lines[i] = e.hooks.decorate(lines[i])
	}
	return lines
}

// composeMessage builds the plain-text order summary handed to the
// messaging sink.
func (e *Engine) composeMessage(orderNumber string, items Cart, t Totals, recorded bool) string {
	fp := e.cfg.FormatPrice
	var b strings.Builder

	fmt.Fprintf(&b, "*NEW ORDER - %s*\n\n", e.cfg.StoreName)
	fmt.Fprintf(&b, "*Order:* #%s\n", orderNumber)
	b.WriteString("*ITEMS:*\n")
	for i, l := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l.Name)
		fmt.Fprintf(&b, "   Quantity: %d\n", l.Quantity)
		fmt.Fprintf(&b, "   Price: %s\n", fp(l.UnitPrice))
		fmt.Fprintf(&b, "   Subtotal: %s\n\n", fp(l.Subtotal()))
	}

	b.WriteString("*SUMMARY:*\n")
	for _, pl := range e.priceLines(t) {
		b.WriteString(pl.Text)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if recorded {
		b.WriteString("Recorded in store system: YES, ready to invoice\n\n")
	} else {
		b.WriteString("Recorded in store system: NO, please confirm this order manually\n\n")
	}
	fmt.Fprintf(&b, "Sent from %s", e.cfg.StoreName)
	return b.String()
}
