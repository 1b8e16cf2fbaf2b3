package services

import (
	"fmt"
	"sync"

	"topup/internal/models"
	"topup/internal/repositories"

	"github.com/google/uuid"
)

// session holds one customer's browsing state: an in-progress selection
// per product, and the cart. Single writer, single reader per session;
// rapid sequential edits are last-write-wins per key.
type session struct {
	selections map[string]models.Selection // keyed by product ID
	cart       models.Cart
}

// SessionService owns the per-session selection and cart state with an
// explicit lifecycle: created on session start, cleared on checkout or
// end. It replaces ambient client-side storage with a context object the
// storefront handlers pass a session ID into.
type SessionService struct {
	productRepo repositories.ProductRepository
	mu          sync.RWMutex
	sessions    map[string]*session
}

// NewSessionService creates a new SessionService.
func NewSessionService(productRepo repositories.ProductRepository) *SessionService {
	return &SessionService{
		productRepo: productRepo,
		sessions:    make(map[string]*session),
	}
}

// Start creates the session if it does not exist yet. Calling it again for
// a live session is a no-op, so handlers can call it on every request.
func (s *SessionService) Start(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.sessions[sessionID] = &session{selections: make(map[string]models.Selection)}
	}
}

// End discards all state held for the session.
func (s *SessionService) End(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *SessionService) get(sessionID string) (*session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not started", sessionID)
	}
	return sess, nil
}

// SetValue records the customer's choice for one option of one product,
// overwriting any previous value for that key. Keys that do not belong to
// the product's active options are rejected immediately rather than
// deferred to checkout.
func (s *SessionService) SetValue(sessionID, productID, key, value string) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	options, err := product.ActiveOptions()
	if err != nil {
		return fmt.Errorf("product %s has malformed options: %w", productID, err)
	}
	known := false
	for _, opt := range options {
		if opt.Meta().Key == key {
			known = true
			break
		}
	}
	if !known {
		return models.SelectionError{Code: models.SelectionUnknownKey, Key: key, Value: value}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	sel, ok := sess.selections[productID]
	if !ok {
		sel = make(models.Selection)
		sess.selections[productID] = sel
	}
	sel[key] = value
	return nil
}

// GetValue returns the recorded choice for one option key, and whether any
// choice has been recorded.
func (s *SessionService) GetValue(sessionID, productID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return "", false, err
	}
	value, ok := sess.selections[productID][key]
	return value, ok, nil
}

// Selection returns a copy of the in-progress selection for one product.
func (s *SessionService) Selection(sessionID, productID string) (models.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sel, ok := sess.selections[productID]
	if !ok {
		return models.Selection{}, nil
	}
	return sel.Clone(), nil
}

// ResetSelection clears all recorded choices for one product, used when
// the customer switches products.
func (s *SessionService) ResetSelection(sessionID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	delete(sess.selections, productID)
	return nil
}

// AddCartLine validates the session's current selection for the product
// and, if it is complete and consistent, snapshots it into a new cart
// line. Selection violations are returned as values so the storefront can
// show them all next to the offending options.
func (s *SessionService) AddCartLine(sessionID, productID string, quantity int) (*models.CartLine, []models.SelectionError, error) {
	if quantity < 1 {
		return nil, nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if !product.IsActive {
		return nil, nil, fmt.Errorf("product %s is no longer available", productID)
	}
	options, err := product.ActiveOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("product %s has malformed options: %w", productID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, nil, err
	}

	selection := sess.selections[productID]
	if selErrs := models.ValidateSelection(options, selection); len(selErrs) > 0 {
		return nil, selErrs, nil
	}

	line := models.CartLine{
		ID:        uuid.New().String(),
		ProductID: productID,
		Selection: selection.Clone(),
		Quantity:  quantity,
	}
	sess.cart.Lines = append(sess.cart.Lines, line)
	return &line, nil, nil
}

// RemoveCartLine removes one line from the session's cart.
func (s *SessionService) RemoveCartLine(sessionID, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	for i, line := range sess.cart.Lines {
		if line.ID == lineID {
			sess.cart.Lines = append(sess.cart.Lines[:i], sess.cart.Lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart line %s not found", lineID)
}

// Cart returns a copy of the session's current cart.
func (s *SessionService) Cart(sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	lines := make([]models.CartLine, len(sess.cart.Lines))
	copy(lines, sess.cart.Lines)
	return &models.Cart{Lines: lines}, nil
}

// ClearCart empties the session's cart, called after a successful checkout.
func (s *SessionService) ClearCart(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}
	sess.cart.Lines = nil
	return nil
}
