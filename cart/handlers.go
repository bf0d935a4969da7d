package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"tienda/models"
	"tienda/utils"

	"github.com/julienschmidt/httprouter"
)

// Manager keeps one in-memory Store per visitor session, rehydrating from
// the persister the first time a session shows up.
type Manager struct {
	persist Persister

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(p Persister) *Manager {
	return &Manager{
		persist: p,
		stores:  make(map[string]*Store),
	}
}

// GetOrCreate returns the session's cart, loading persisted items on first
// access.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := NewStore(ctx, sessionID, m.persist)
	m.stores[sessionID] = s

	// evict the in-memory copy after a day; redis keeps the items
	go func() {
		time.Sleep(24 * time.Hour)
		m.mu.Lock()
		delete(m.stores, sessionID)
		m.mu.Unlock()
	}()

	return s
}

// Handler exposes the session cart over HTTP.
type Handler struct {
	Manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{Manager: m}
}

type addPayload struct {
	Item     models.CartItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// AddItem merges an item into the session cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)

	var payload addPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Item.ProductID == "" || payload.Item.Name == "" || payload.Item.Price < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	store := h.Manager.GetOrCreate(ctx, sessionID)
	state := store.AddItem(ctx, payload.Item, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusCreated, state)
}

// GetCart returns the session cart snapshot.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	store := h.Manager.GetOrCreate(ctx, sessionID)
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

type quantityPayload struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	itemID := ps.ByName("itemId")

	var payload quantityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateQuantity decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	store := h.Manager.GetOrCreate(ctx, sessionID)
	state := store.UpdateQuantity(ctx, itemID, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, state)
}

// RemoveItem drops a line from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	store := h.Manager.GetOrCreate(ctx, sessionID)
	state := store.RemoveItem(ctx, ps.ByName("itemId"))
	utils.RespondWithJSON(w, http.StatusOK, state)
}

// --- UI flag endpoints: panel and checkout visibility ---

func (h *Handler) OpenCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.flagOp(w, r, func(s *Store) { s.OpenCart() })
}

func (h *Handler) CloseCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.flagOp(w, r, func(s *Store) { s.CloseCart() })
}

func (h *Handler) ToggleCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.flagOp(w, r, func(s *Store) { s.ToggleCart() })
}

func (h *Handler) OpenCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.flagOp(w, r, func(s *Store) { s.OpenCheckout() })
}

func (h *Handler) CloseCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.flagOp(w, r, func(s *Store) { s.CloseCheckout() })
}

func (h *Handler) flagOp(w http.ResponseWriter, r *http.Request, op func(*Store)) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	store := h.Manager.GetOrCreate(ctx, sessionID)
	op(store)
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// ClearCart empties the session cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	store := h.Manager.GetOrCreate(ctx, sessionID)
	state := store.Clear(ctx)
	utils.RespondWithJSON(w, http.StatusOK, state)
}
