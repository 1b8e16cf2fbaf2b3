package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"topup/internal/models"
	"topup/internal/repositories"
	"topup/pkg/rabbitmq"
)

// ProvisionFailure records why one product could not be provisioned.
type ProvisionFailure struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

// ProvisionSummary is the per-category tally of one provisioning run, the
// operation's primary observable output.
type ProvisionSummary struct {
	Provisioned int                `json:"provisioned"`
	Skipped     int                `json:"skipped"`
	Failed      int                `json:"failed"`
	Total       int                `json:"total"`
	Failures    []ProvisionFailure `json:"failures,omitempty"`
}

// ProvisionService seeds a canonical baseline option set onto catalog
// products that have none yet: an amount-tier select followed by an
// account-tag input. The operation is idempotent; products that already
// carry any option are never touched.
type ProvisionService struct {
	productRepo repositories.ProductRepository
	optionRepo  repositories.OptionRepository
	publisher   EventPublisher
	mu          sync.Mutex // at most one run in flight
}

// NewProvisionService creates a new ProvisionService. The publisher may be
// nil, in which case no summary event is emitted.
func NewProvisionService(productRepo repositories.ProductRepository, optionRepo repositories.OptionRepository, publisher EventPublisher) *ProvisionService {
	return &ProvisionService{
		productRepo: productRepo,
		optionRepo:  optionRepo,
		publisher:   publisher,
	}
}

// BaselineOptions builds the default option set for a product: a required
// amount-tier select (the double tier costs one extra base price) and a
// required account-tag input, in that order.
func BaselineOptions(product *models.Product) []models.OptionRecord {
	return []models.OptionRecord{
		{
			ProductID: product.ID,
			Type:      models.OptionTypeSelect,
			Name:      "Amount",
			Key:       "amount",
			Required:  true,
			Choices: []models.Choice{
				{Label: "Standard", Value: "standard", PriceModifier: 0, Description: "Standard top-up amount"},
				{Label: "Double", Value: "double", PriceModifier: product.BasePrice, Description: "Twice the top-up amount"},
			},
			SortOrder: 0,
			IsActive:  true,
		},
		{
			ProductID:   product.ID,
			Type:        models.OptionTypeInput,
			Name:        "Account Tag",
			Key:         "account_tag",
			Required:    true,
			Placeholder: "Your account or player tag",
			SortOrder:   1,
			IsActive:    true,
		},
	}
}

// Run provisions the active catalog. Products are processed independently:
// a failure on one is tallied and does not halt the rest. The loop checks
// ctx between products, so cancellation never leaves a product counted as
// successfully provisioned with a partial option set.
//
// Runs are serialized, and the store's (product_id, key) uniqueness turns
// a racing duplicate insert into a per-product failure, so two concurrent
// invocations cannot double-provision a product.
func (s *ProvisionService) Run(ctx context.Context) (*ProvisionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list products for provisioning: %w", err)
	}

	summary := &ProvisionSummary{}
	for i := range products {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		product := &products[i]
		summary.Total++

		existing, err := s.optionRepo.ListByProduct(product.ID)
		if err != nil {
			s.recordFailure(summary, product.ID, err)
			continue
		}
		// Non-destructive: any existing option means the product is
		// skipped, whether or not it matches the baseline set.
		if len(existing) > 0 {
			summary.Skipped++
			continue
		}

		if err := s.provisionProduct(product); err != nil {
			s.recordFailure(summary, product.ID, err)
			continue
		}
		summary.Provisioned++
	}

	s.publishSummary(summary)
	return summary, nil
}

// provisionProduct inserts both baseline options. A failure after the
// first insert is returned, so the half-provisioned product lands in the
// failed tally rather than being reported as provisioned.
func (s *ProvisionService) provisionProduct(product *models.Product) error {
	for _, rec := range BaselineOptions(product) {
		option := rec
		if defErrs := models.ValidateDefinition(option, nil); len(defErrs) > 0 {
			return fmt.Errorf("invalid baseline option %q: %s", option.Key, defErrs[0].Error())
		}
		if err := s.optionRepo.Create(&option); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProvisionService) recordFailure(summary *ProvisionSummary, productID string, err error) {
	log.Printf("Provisioning failed for product %s: %v", productID, err)
	summary.Failed++
	summary.Failures = append(summary.Failures, ProvisionFailure{
		ProductID: productID,
		Reason:    err.Error(),
	})
}

func (s *ProvisionService) publishSummary(summary *ProvisionSummary) {
	if s.publisher == nil {
		log.Println("RabbitMQ client is not initialized. Skipping provisioning summary publication.")
		return
	}
	body, err := json.Marshal(summary)
	if err != nil {
		log.Printf("Failed to marshal provisioning summary to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.CatalogQueue, "catalog.provisioned", body); err != nil {
		log.Printf("Warning: Failed to publish provisioning summary: %v", err)
	}
}
