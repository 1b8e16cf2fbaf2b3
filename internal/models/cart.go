package models

// CartLine is one in-progress line in a customer's cart: a product, the
// selection captured when the customer added it, and a quantity. Cart lines
// are ephemeral; checkout converts them into immutable order lines.
type CartLine struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId" validate:"required"`
	Selection Selection `json:"selection"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

// Cart holds the customer's current lines for one browsing session.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// PricedLine pairs a cart line with prices composed at read time.
type PricedLine struct {
	CartLine
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
}

// CartSummary is a priced snapshot of a cart. It is recomputed on every
// read rather than maintained incrementally, so displayed totals cannot
// drift from the cart contents.
type CartSummary struct {
	Lines     []PricedLine `json:"lines"`
	Total     int64        `json:"total"`
	ItemCount int          `json:"itemCount"`
}
