package handlers

import (
	"log"

	"topup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProvisionHandler exposes the default-option provisioning batch to
// administrators.
type ProvisionHandler struct {
	service *services.ProvisionService
}

// NewProvisionHandler creates a new ProvisionHandler.
func NewProvisionHandler(service *services.ProvisionService) *ProvisionHandler {
	return &ProvisionHandler{
		service: service,
	}
}

// RegisterAdminRoutes registers the provisioning route.
func (h *ProvisionHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/provision", h.HandleProvision)
}

// HandleProvision runs baseline-option provisioning over the active
// catalog and returns the tally. Per-product failures are part of the
// summary, not an HTTP error; only a failure to enumerate the catalog
// (or a cancelled request) aborts the run.
func (h *ProvisionHandler) HandleProvision(c *fiber.Ctx) error {
	summary, err := h.service.Run(c.Context())
	if err != nil {
		log.Printf("Provisioning run failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Provisioning run failed",
			"error":   err.Error(),
			"summary": summary,
		})
	}
	return c.JSON(summary)
}
