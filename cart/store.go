package cart

import (
	"context"
	"log"
	"sync"

	"tienda/models"
)

// Persister is the durable slot holding a session's cart lines. Only the
// item list is persisted; UI flags are not.
type Persister interface {
	Save(ctx context.Context, sessionID string, items []models.CartItem) error
	Load(ctx context.Context, sessionID string) ([]models.CartItem, error)
	Delete(ctx context.Context, sessionID string) error
}

// Store owns one session's cart. Every mutation is a reducer transition: the
// previous item list produces a new list and totals are recomputed, never
// patched in place. The item list is persisted after every change;
// persistence failures are logged and otherwise ignored so the storefront
// keeps working.
type Store struct {
	sessionID string
	persist   Persister

	mu    sync.Mutex
	state models.CartState
}

// NewStore creates a cart for the session, rehydrating persisted items if
// there are any. A failed or corrupt read falls back to an empty cart.
func NewStore(ctx context.Context, sessionID string, p Persister) *Store {
	s := &Store{sessionID: sessionID, persist: p}
	s.state.Items = []models.CartItem{}

	if p != nil {
		items, err := p.Load(ctx, sessionID)
		if err != nil {
			log.Println("cart rehydrate failed, starting empty:", err)
		} else if items != nil {
			s.state.Items = items
			s.recompute()
		}
	}
	return s
}

// LineID derives the cart line key: productID alone, or productID-variantID
// when a variant is chosen.
func LineID(productID string, v *models.Variant) string {
	if v != nil && v.ID != "" {
		return productID + "-" + v.ID
	}
	return productID
}

// Snapshot returns a copy of the cart state.
func (s *Store) Snapshot() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Items = append([]models.CartItem(nil), s.state.Items...)
	return out
}

// AddItem merges the item into the cart: an existing product+variant line
// gets its quantity bumped, otherwise a new line is appended.
func (s *Store) AddItem(ctx context.Context, item models.CartItem, quantity int) models.CartState {
	if quantity < 1 {
		quantity = 1
	}
	item.ID = LineID(item.ProductID, item.Variant)

	return s.transition(ctx, func(items []models.CartItem) []models.CartItem {
		next := append([]models.CartItem(nil), items...)
		for i := range next {
			if next[i].ID == item.ID {
				next[i].Quantity += quantity
				return next
			}
		}
		item.Quantity = quantity
		return append(next, item)
	})
}

// RemoveItem drops the line with the given id.
func (s *Store) RemoveItem(ctx context.Context, id string) models.CartState {
	return s.transition(ctx, func(items []models.CartItem) []models.CartItem {
		next := make([]models.CartItem, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				next = append(next, it)
			}
		}
		return next
	})
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less is the
// same as removing the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) models.CartState {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}
	return s.transition(ctx, func(items []models.CartItem) []models.CartItem {
		next := append([]models.CartItem(nil), items...)
		for i := range next {
			if next[i].ID == id {
				next[i].Quantity = quantity
				break
			}
		}
		return next
	})
}

// Clear empties the cart and its persisted slot.
func (s *Store) Clear(ctx context.Context) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = []models.CartItem{}
	s.recompute()
	if s.persist != nil {
		if err := s.persist.Delete(ctx, s.sessionID); err != nil {
			log.Println("cart clear persist failed:", err)
		}
	}
	out := s.state
	out.Items = []models.CartItem{}
	return out
}

// --- UI flags (not persisted) ---

func (s *Store) OpenCart() {
	s.mu.Lock()
	s.state.IsOpen = true
	s.mu.Unlock()
}

func (s *Store) CloseCart() {
	s.mu.Lock()
	s.state.IsOpen = false
	s.mu.Unlock()
}

func (s *Store) ToggleCart() {
	s.mu.Lock()
	s.state.IsOpen = !s.state.IsOpen
	s.mu.Unlock()
}

func (s *Store) OpenCheckout() {
	s.mu.Lock()
	s.state.IsCheckoutOpen = true
	s.mu.Unlock()
}

func (s *Store) CloseCheckout() {
	s.mu.Lock()
	s.state.IsCheckoutOpen = false
	s.mu.Unlock()
}

// transition applies a reducer over the current items, recomputes totals and
// persists the new list. Save happens while the lock is held: persisted lists
// must land in mutation order, or a stale list overwrites a newer one and the
// divergence survives rehydration.
func (s *Store) transition(ctx context.Context, reduce func([]models.CartItem) []models.CartItem) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = reduce(s.state.Items)
	s.recompute()
	items := append([]models.CartItem(nil), s.state.Items...)

	if s.persist != nil {
		if err := s.persist.Save(ctx, s.sessionID, items); err != nil {
			log.Println("cart persist failed:", err)
		}
	}

	out := s.state
	out.Items = items
	return out
}

// recompute derives totals from the item list. Caller holds the lock.
func (s *Store) recompute() {
	totalItems := 0
	totalPrice := 0.0
	for _, it := range s.state.Items {
		totalItems += it.Quantity
		totalPrice += it.Subtotal()
	}
	s.state.TotalItems = totalItems
	s.state.TotalPrice = totalPrice
}
