package shipping

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tienda/utils"

	"github.com/julienschmidt/httprouter"
)

// calculations are bounded so the UI never sits in "calculating" forever
const calcTimeout = 10 * time.Second

// Handler exposes per-session shipping calculators over HTTP.
type Handler struct {
	Manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{Manager: m}
}

type coordinatesPayload struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type addressPayload struct {
	Address string `json:"address"`
}

// PostCoordinates handles a trusted coordinate input (autocomplete pick,
// geolocation, map pin drag) and returns the recalculated quote.
func (h *Handler) PostCoordinates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), calcTimeout)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	storeID := ps.ByName("storeId")

	var payload coordinatesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("PostCoordinates decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	calc := h.Manager.GetOrCreate(sessionID, storeID)
	state := calc.SetCoordinates(ctx, payload.Address, payload.Lat, payload.Lng)
	utils.RespondWithJSON(w, http.StatusOK, state)
}

// PostAddress records free-typed address input. No calculation happens here;
// that waits for blur.
func (h *Handler) PostAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := utils.EnsureSessionID(w, r)
	storeID := ps.ByName("storeId")

	var payload addressPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("PostAddress decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	calc := h.Manager.GetOrCreate(sessionID, storeID)
	state := calc.SetManualAddress(payload.Address)
	utils.RespondWithJSON(w, http.StatusOK, state)
}

// PostBlur fires the deferred calculation for a manually typed address.
func (h *Handler) PostBlur(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), calcTimeout)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	storeID := ps.ByName("storeId")

	calc := h.Manager.GetOrCreate(sessionID, storeID)
	state := calc.Blur(ctx)
	utils.RespondWithJSON(w, http.StatusOK, state)
}

// GetState returns the current quote snapshot.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := utils.EnsureSessionID(w, r)
	storeID := ps.ByName("storeId")

	calc := h.Manager.GetOrCreate(sessionID, storeID)
	utils.RespondWithJSON(w, http.StatusOK, calc.Snapshot())
}

// Delete drops the session's calculator. Called when the checkout UI closes
// so no pending calculation outlives it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := utils.EnsureSessionID(w, r)
	storeID := ps.ByName("storeId")

	h.Manager.Drop(sessionID, storeID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
