package cart

import "github.com/Govind-619/storefront/models"

// Line is one product's entry in the cart. The JSON shape is the durable
// storage contract.
type Line struct {
	ProductID    uint   `json:"id"`
	Name         string `json:"name"`
	UnitPrice    int64  `json:"price"`
	Quantity     int    `json:"quantity"`
	StockCeiling int    `json:"stock"`
	ImageURL     string `json:"image_url,omitempty"`
}

// Subtotal is unitPrice x quantity.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is an ordered list of lines with unique product ids.
type Cart []Line

func (c Cart) index(productID uint) int {
	for i := range c {
		if c[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Find returns the line for productID.
func (c Cart) Find(productID uint) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c[i], true
	}
	return Line{}, false
}

// Subtotal is the raw, undiscounted sum of every line.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, l := range c {
		total += l.Subtotal()
	}
	return total
}

// ItemCount is the number of units across lines (the cart badge).
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

func (c Cart) clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// add merges quantity into the line for p, or appends a new line. The cart is
// left untouched on error.
func (c Cart) add(p models.Product, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return c, ErrInsufficientStock
	}
	if i := c.index(p.ID); i >= 0 {
		merged := c[i].Quantity + quantity
		if merged > p.Stock {
			return c, ErrInsufficientStock
		}
		out := c.clone()
		out[i].Quantity = merged
		out[i].StockCeiling = p.Stock
		return out, nil
	}
	return append(c.clone(), Line{
		ProductID:    p.ID,
		Name:         p.Name,
		UnitPrice:    p.Price,
		Quantity:     quantity,
		StockCeiling: p.Stock,
		ImageURL:     p.ImageURL,
	}), nil
}

// changeQuantity applies delta. removed is true when the line dropped to zero
// and was deleted.
func (c Cart) changeQuantity(productID uint, delta int) (out Cart, removed bool, err error) {
	i := c.index(productID)
	if i < 0 {
		return c, false, ErrLineNotFound
	}
	next := c[i].Quantity + delta
	if next <= 0 {
		out, err = c.remove(productID)
		return out, true, err
	}
	if next > c[i].StockCeiling {
		return c, false, ErrInsufficientStock
	}
	out = c.clone()
	out[i].Quantity = next
	return out, false, nil
}

func (c Cart) remove(productID uint) (Cart, error) {
	i := c.index(productID)
	if i < 0 {
		return c, ErrLineNotFound
	}
	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...), nil
}

// sanitize enforces line invariants on data read back from storage.
func (c Cart) sanitize() Cart {
	out := make(Cart, 0, len(c))
	seen := make(map[uint]bool, len(c))
	for _, l := range c {
		if seen[l.ProductID] {
			continue
		}
		if l.Quantity > l.StockCeiling {
			l.Quantity = l.StockCeiling
		}
		if l.Quantity <= 0 {
			continue
		}
		seen[l.ProductID] = true
		out = append(out, l)
	}
	return out
}
