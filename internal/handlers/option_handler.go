package handlers

import (
	"fmt"
	"log"
	"strings"

	"topup/internal/models"
	"topup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OptionHandler handles HTTP requests for option authoring.
type OptionHandler struct {
	service  *services.OptionService
	validate *validator.Validate
}

// NewOptionHandler creates a new OptionHandler.
func NewOptionHandler(service *services.OptionService) *OptionHandler {
	return &OptionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterAdminRoutes registers the option authoring routes.
func (h *OptionHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/products/:id/options", h.HandleListOptions)
	router.Post("/products/:id/options", h.HandleCreateOption)
	router.Put("/options/:id", h.HandleUpdateOption)
	router.Delete("/options/:id", h.HandleDeactivateOption)
}

// HandleListOptions returns a product's options in rendering order.
func (h *OptionHandler) HandleListOptions(c *fiber.Ctx) error {
	productID := c.Params("id")
	options, err := h.service.ListOptions(productID)
	if err != nil {
		log.Printf("Error listing options for product %s: %v", productID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve options",
			"error":   err.Error(),
		})
	}
	return c.JSON(options)
}

// HandleCreateOption creates a new option on a product. Definition
// violations are returned together with 422 so the authoring UI can show
// them all at once.
func (h *OptionHandler) HandleCreateOption(c *fiber.Ctx) error {
	productID := c.Params("id")
	var option models.OptionRecord
	if err := c.BodyParser(&option); err != nil {
		log.Printf("Error parsing option request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(option); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	defErrs, err := h.service.CreateOption(productID, &option)
	if err != nil {
		log.Printf("Error creating option on product %s: %v", productID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create option",
			"error":   err.Error(),
		})
	}
	if len(defErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Option definition is invalid",
			"errors":  defErrs,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(option)
}

// HandleUpdateOption updates an existing option.
func (h *OptionHandler) HandleUpdateOption(c *fiber.Ctx) error {
	optionID := c.Params("id")
	var option models.OptionRecord
	if err := c.BodyParser(&option); err != nil {
		log.Printf("Error parsing option update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	option.ID = optionID

	defErrs, err := h.service.UpdateOption(&option)
	if err != nil {
		log.Printf("Error updating option %s: %v", optionID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Option with ID %s not found", optionID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update option",
			"error":   err.Error(),
		})
	}
	if len(defErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Option definition is invalid",
			"errors":  defErrs,
		})
	}

	return c.JSON(option)
}

// HandleDeactivateOption removes an option from rendering and pricing.
func (h *OptionHandler) HandleDeactivateOption(c *fiber.Ctx) error {
	optionID := c.Params("id")
	if err := h.service.DeactivateOption(optionID); err != nil {
		log.Printf("Error deactivating option %s: %v", optionID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Option with ID %s not found", optionID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not deactivate option",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Option %s deactivated successfully", optionID),
	})
}
