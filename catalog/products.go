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

// decodeProduct validates a catalog document at the boundary. Documents
// without the fields the cart depends on are rejected here instead of
// propagating zero values into the storefront.
func decodeProduct(raw bson.Raw) (models.Product, bool) {
	var p models.Product
	if err := bson.Unmarshal(raw, &p); err != nil {
		log.Println("skipping malformed product document:", err)
		return models.Product{}, false
	}
	if p.ProductID == "" || p.Name == "" || p.Price < 0 {
		log.Printf("skipping incomplete product document %q", p.ProductID)
		return models.Product{}, false
	}
	return p, true
}

// GetStoreProducts lists a store's active products, optionally filtered by
// ?category=.
func GetStoreProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"storeId": ps.ByName("storeId"), "active": true}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["categoryId"] = cat
	}

	cursor, err := db.ProductsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Println("GetStoreProducts Find error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		if p, ok := decodeProduct(cursor.Current); ok {
			products = append(products, p)
		}
	}
	if err := cursor.Err(); err != nil {
		log.Println("GetStoreProducts cursor error:", err)
		http.Error(w, "Error reading product data", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns one product by slug within a store.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res := db.ProductsCollection.FindOne(ctx, bson.M{
		"storeId": ps.ByName("storeId"),
		"slug":    ps.ByName("slug"),
	})
	raw, err := res.Raw()
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	product, ok := decodeProduct(raw)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}
