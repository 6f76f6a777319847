package cart

import "github.com/shopspring/decimal"

type DiscountSource string

const (
	SourceUserTier DiscountSource = "user_tier"
	SourceCoupon   DiscountSource = "coupon"
)

// Discount is one percentage discount in a stack.
type Discount struct {
	Source  DiscountSource `json:"source"`
	Label   string         `json:"label"`
	Percent int            `json:"percent"`
}

// DiscountStack is applied in order, each entry against the running
// already-discounted subtotal.
type DiscountStack []Discount

func (ds DiscountStack) has(src DiscountSource) bool {
	for _, d := range ds {
		if d.Source == src {
			return true
		}
	}
	return false
}

type AppliedDiscount struct {
	Discount
	Amount int64 `json:"amount"`
}

// ShippingPolicy charges FlatFee when 0 < discounted subtotal < FreeThreshold.
type ShippingPolicy struct {
	FlatFee       int64 `json:"flat_fee"`
	FreeThreshold int64 `json:"free_threshold"`
}

// Charge returns the shipping due for a discounted subtotal.
func (p ShippingPolicy) Charge(subtotal int64) int64 {
	if subtotal > 0 && subtotal < p.FreeThreshold {
		return p.FlatFee
	}
	return 0
}

type Totals struct {
	RawSubtotal        int64             `json:"raw_subtotal"`
	DiscountedSubtotal int64             `json:"discounted_subtotal"`
	Shipping           int64             `json:"shipping"`
	Total              int64             `json:"total"`
	Discounts          []AppliedDiscount `json:"discounts"`
}

// DiscountTotal is the sum of every applied discount amount.
func (t Totals) DiscountTotal() int64 {
	var sum int64
	for _, d := range t.Discounts {
		sum += d.Amount
	}
	return sum
}

// ComputeTotals derives pricing for lines. It has no side effects.
func ComputeTotals(lines Cart, stack DiscountStack, policy ShippingPolicy) Totals {
	t := Totals{RawSubtotal: lines.Subtotal()}

	running := t.RawSubtotal
	t.Discounts = make([]AppliedDiscount, 0, len(stack))
	for _, d := range stack {
		amount := percentOf(running, d.Percent)
		running -= amount
		t.Discounts = append(t.Discounts, AppliedDiscount{Discount: d, Amount: amount})
	}

	t.DiscountedSubtotal = running
	t.Shipping = policy.Charge(running)
	t.Total = running + t.Shipping
	return t
}

// percentOf rounds amount*percent/100 to the nearest unit, halves up.
func percentOf(amount int64, percent int) int64 {
	if percent <= 0 || amount <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
