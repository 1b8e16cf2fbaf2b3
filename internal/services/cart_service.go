package services

import (
	"fmt"

	"topup/internal/models"
	"topup/internal/repositories"
)

// CartService prices carts for display. Totals are pure reductions over
// the current cart snapshot, recomputed on every read so they cannot
// drift from the cart contents.
type CartService struct {
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		productRepo: productRepo,
	}
}

// Summarize composes the unit price of every line against the current
// catalog state and returns priced lines, the cart total and the item
// count.
func (s *CartService) Summarize(cart *models.Cart) (*models.CartSummary, error) {
	summary := &models.CartSummary{
		Lines:     make([]models.PricedLine, 0, len(cart.Lines)),
		ItemCount: cart.ItemCount(),
	}
	for _, line := range cart.Lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to price cart line %s: %w", line.ID, err)
		}
		options, err := product.ActiveOptions()
		if err != nil {
			return nil, fmt.Errorf("product %s has malformed options: %w", product.ID, err)
		}
		unitPrice := models.ComposeUnitPrice(product.BasePrice, options, line.Selection)
		lineTotal := unitPrice * int64(line.Quantity)
		summary.Lines = append(summary.Lines, models.PricedLine{
			CartLine:    line,
			ProductName: product.Name,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
		summary.Total += lineTotal
	}
	return summary, nil
}
