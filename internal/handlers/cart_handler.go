package handlers

import (
	"errors"
	"log"
	"strings"

	"topup/internal/models"
	"topup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles the storefront session: in-progress selections, the
// cart and checkout. The authenticated customer ID doubles as the session
// ID, so a customer's browsing state follows their token.
type CartHandler struct {
	sessions *services.SessionService
	carts    *services.CartService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(sessions *services.SessionService, carts *services.CartService, orders *services.OrderService) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		carts:    carts,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the storefront session routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/products/:id/selection", h.HandleSetSelectionValue)
	router.Get("/products/:id/selection", h.HandleGetSelection)
	router.Delete("/products/:id/selection", h.HandleResetSelection)
	router.Post("/cart/lines", h.HandleAddCartLine)
	router.Delete("/cart/lines/:lineId", h.HandleRemoveCartLine)
	router.Get("/cart", h.HandleGetCart)
	router.Post("/checkout", h.HandleCheckout)
	router.Delete("/session", h.HandleEndSession)
}

// sessionID extracts the session key from the JWT claims and makes sure
// the session exists.
func (h *CartHandler) sessionID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("customer_id").(string)
	if !ok || id == "" {
		return "", errors.New("missing customer identity in token")
	}
	h.sessions.Start(id)
	return id, nil
}

// SelectionValueRequest is the body for recording one option choice.
type SelectionValueRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// HandleSetSelectionValue records the customer's choice for one option of
// the product being configured.
func (h *CartHandler) HandleSetSelectionValue(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	var req SelectionValueRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing selection request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	productID := c.Params("id")
	if err := h.sessions.SetValue(sessionID, productID, req.Key, req.Value); err != nil {
		var selErr models.SelectionError
		if errors.As(err, &selErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Selection rejected",
				"errors":  []models.SelectionError{selErr},
			})
		}
		log.Printf("Error setting selection value for product %s: %v", productID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record selection",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Selection recorded"})
}

// HandleGetSelection returns the in-progress selection for a product.
func (h *CartHandler) HandleGetSelection(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	selection, err := h.sessions.Selection(sessionID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve selection",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"selection": selection})
}

// HandleResetSelection clears the in-progress selection for a product.
func (h *CartHandler) HandleResetSelection(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.sessions.ResetSelection(sessionID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not reset selection",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Selection reset"})
}

// AddCartLineRequest is the body for adding the configured product to the
// cart.
type AddCartLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// HandleAddCartLine snapshots the current selection for a product into a
// new cart line. Incomplete or inconsistent selections are rejected with
// all field errors at once.
func (h *CartHandler) HandleAddCartLine(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	var req AddCartLineRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart line request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	line, selErrs, err := h.sessions.AddCartLine(sessionID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding cart line for product %s: %v", req.ProductID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}
	if len(selErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Selection is incomplete or invalid",
			"errors":  selErrs,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(line)
}

// HandleRemoveCartLine removes one line from the cart.
func (h *CartHandler) HandleRemoveCartLine(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	lineID := c.Params("lineId")
	if err := h.sessions.RemoveCartLine(sessionID, lineID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart line not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart line",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Cart line removed"})
}

// HandleGetCart returns the priced cart summary, recomputed against the
// current catalog.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	cart, err := h.sessions.Cart(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	summary, err := h.carts.Summarize(cart)
	if err != nil {
		log.Printf("Error summarizing cart for session %s: %v", sessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not price cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleCheckout converts the cart into an order and clears it.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	cart, err := h.sessions.Cart(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}

	order, selErrs, err := h.orders.Checkout(sessionID, cart)
	if err != nil {
		log.Printf("Error during checkout for session %s: %v", sessionID, err)
		if strings.Contains(err.Error(), "cart is empty") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
			"error":   err.Error(),
		})
	}
	if len(selErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Checkout rejected: selections are invalid",
			"errors":  selErrs,
		})
	}

	if err := h.sessions.ClearCart(sessionID); err != nil {
		log.Printf("Warning: could not clear cart for session %s: %v", sessionID, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleEndSession discards the session's selections and cart.
func (h *CartHandler) HandleEndSession(c *fiber.Ctx) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	h.sessions.End(sessionID)
	return c.JSON(fiber.Map{"message": "Session ended"})
}
