package stores

import (
	"context"
	"log"
	"net/http"
	"time"

	"tienda/db"
	"tienda/models"
	"tienda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetStoreBySlug resolves a storefront by its public slug, with the theme
// resolved against the closed registry.
func GetStoreBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var store models.Store
	err := db.StoresCollection.FindOne(ctx, bson.M{"slug": ps.ByName("slug")}).Decode(&store)
	if err != nil {
		http.Error(w, "Store not found", http.StatusNotFound)
		return
	}

	theme := ResolveTheme(store.ThemeID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"store": store,
		"theme": theme,
	})
}

// GetStore returns a store's settings by id.
func GetStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var store models.Store
	err := db.StoresCollection.FindOne(ctx, bson.M{"_id": ps.ByName("storeId")}).Decode(&store)
	if err != nil {
		log.Println("GetStore FindOne error:", err)
		http.Error(w, "Store not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, store)
}
