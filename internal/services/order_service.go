package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"topup/internal/models"
	"topup/internal/repositories"
	"topup/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService handles checkout and order retrieval.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService. The publisher may be nil, in
// which case no order events are emitted.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByCustomer retrieves the orders placed by one customer.
func (s *OrderService) GetOrdersByCustomer(customerID string) ([]models.Order, error) {
	return s.orderRepo.GetByCustomer(customerID)
}

// Checkout converts the cart into an immutable order. Every line's
// selection is re-validated against the current catalog; if any line
// fails, all selection errors are returned together and no order is
// created. Each order line carries the unit price composed at this moment,
// so later catalog edits cannot alter it.
func (s *OrderService) Checkout(customerID string, cart *models.Cart) (*models.Order, []models.SelectionError, error) {
	if len(cart.Lines) == 0 {
		return nil, nil, fmt.Errorf("cart is empty")
	}

	var selErrs []models.SelectionError
	lines := make([]models.OrderLine, 0, len(cart.Lines))
	var totalAmount int64

	for _, line := range cart.Lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("product %s not found: %w", line.ProductID, err)
		}
		if !product.IsActive {
			return nil, nil, fmt.Errorf("product %s is no longer available", product.ID)
		}
		options, err := product.ActiveOptions()
		if err != nil {
			return nil, nil, fmt.Errorf("product %s has malformed options: %w", product.ID, err)
		}

		if errs := models.ValidateSelection(options, line.Selection); len(errs) > 0 {
			selErrs = append(selErrs, errs...)
			continue
		}

		unitPrice := models.ComposeUnitPrice(product.BasePrice, options, line.Selection)
		lineTotal := unitPrice * int64(line.Quantity)
		lines = append(lines, models.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Selection:   line.Selection.Clone(),
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
		totalAmount += lineTotal
	}

	if len(selErrs) > 0 {
		return nil, selErrs, nil
	}

	newOrder := &models.Order{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		Lines:       lines,
		TotalAmount: totalAmount,
		ItemCount:   cart.ItemCount(),
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(newOrder)
	return newOrder, nil, nil
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusPending:   true,
		models.OrderStatusPaid:      true,
		models.OrderStatusDelivered: true,
		models.OrderStatusCancelled: true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		log.Println("RabbitMQ client is not initialized. Skipping order event publication.")
		return
	}
	message := map[string]interface{}{
		"orderID":    order.ID,
		"customerID": order.CustomerID,
		"status":     order.Status,
		"total":      order.TotalAmount,
		"itemCount":  order.ItemCount,
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal order to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.OrderQueue, "order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Successfully published order created event for order %s", order.ID)
}
