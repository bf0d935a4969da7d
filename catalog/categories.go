package catalog

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetStoreCategories lists a store's categories in display order.
func GetStoreCategories(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoriesCollection.Find(ctx,
		bson.M{"storeId": ps.ByName("storeId")},
		options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		log.Println("GetStoreCategories Find error:", err)
		http.Error(w, "Could not retrieve categories", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		log.Println("GetStoreCategories cursor.All error:", err)
		http.Error(w, "Error reading category data", http.StatusInternalServerError)
		return
	}
	if len(categories) == 0 {
		categories = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}
