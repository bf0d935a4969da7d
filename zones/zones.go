package zones

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tienda/db"
	"tienda/models"
	"tienda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Repo loads a store's delivery zones, decoding the stored documents at the
// boundary. It satisfies shipping.ZoneSource.
type Repo struct{}

func NewRepo() *Repo {
	return &Repo{}
}

// ZonesFor returns the store's zones in document order. Malformed documents
// are logged and skipped instead of leaking half-decoded zones into the
// matcher.
func (Repo) ZonesFor(ctx context.Context, storeID string) ([]models.DeliveryZone, error) {
	cursor, err := db.ZonesCollection.Find(ctx, bson.M{"storeId": storeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var zones []models.DeliveryZone
	for cursor.Next(ctx) {
		zone, err := zoneFromDoc(cursor.Current)
		if err != nil {
			log.Println("skipping malformed zone document:", err)
			continue
		}
		zones = append(zones, zone)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return zones, nil
}

// Handler exposes zone reads to the storefront and zone creation to the
// merchant dashboard.
type Handler struct {
	Repo *Repo
}

func NewHandler(r *Repo) *Handler {
	return &Handler{Repo: r}
}

// GetStoreZones returns the store's delivery zones.
func (h *Handler) GetStoreZones(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	zones, err := h.Repo.ZonesFor(ctx, ps.ByName("storeId"))
	if err != nil {
		log.Println("GetStoreZones error:", err)
		http.Error(w, "Could not retrieve delivery zones", http.StatusInternalServerError)
		return
	}
	if len(zones) == 0 {
		zones = []models.DeliveryZone{}
	}
	utils.RespondWithJSON(w, http.StatusOK, zones)
}

// CreateZone stores a new delivery zone for the merchant's store. The shape
// payload is validated here, at the edge, so the matcher never sees a
// malformed zone.
func (h *Handler) CreateZone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	storeID := utils.GetStoreIDFromRequest(r)
	if storeID == "" || storeID != ps.ByName("storeId") {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload zonePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("CreateZone decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	zone, err := payload.toZone()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	zone.ID = utils.NewID()
	zone.StoreID = storeID

	if _, err := db.ZonesCollection.InsertOne(ctx, zoneToDoc(zone)); err != nil {
		log.Println("CreateZone InsertOne error:", err)
		http.Error(w, "Failed to create zone", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, zone)
}
