package catalog

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"tienda/db"
	"tienda/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var filenameRe = regexp.MustCompile(`[^\w.\-]`)

func sanitizeFilename(name string) string {
	clean := filenameRe.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" {
		return "file"
	}
	return clean
}

// UploadProductImage stores a product photo and a 300px-wide thumbnail, then
// attaches both to the product. Merchant-only.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	storeID := utils.GetStoreIDFromRequest(r)
	if storeID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	productID := ps.ByName("productId")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF.", http.StatusBadRequest)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		log.Println("UploadProductImage decode error:", err)
		http.Error(w, "Could not decode image", http.StatusBadRequest)
		return
	}

	dir := filepath.Join("static", "productpic", storeID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Println("UploadProductImage mkdir error:", err)
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}

	name := utils.GenerateRandomString(16) + "_" + sanitizeFilename(header.Filename)
	originalPath := filepath.Join(dir, name)
	thumbPath := filepath.Join(dir, "thumb_"+name)

	if err := imaging.Save(img, originalPath); err != nil {
		log.Println("UploadProductImage save error:", err)
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("UploadProductImage thumbnail error:", err)
		http.Error(w, "Failed to save thumbnail", http.StatusInternalServerError)
		return
	}

	imageURL := "/" + filepath.ToSlash(originalPath)
	update := bson.M{
		"$set":  bson.M{"image": "/" + filepath.ToSlash(thumbPath)},
		"$push": bson.M{"images": imageURL},
	}
	if _, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"_id": productID, "storeId": storeID}, update); err != nil {
		log.Println("UploadProductImage UpdateOne error:", err)
		http.Error(w, "Failed to attach image", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"image":     imageURL,
		"thumbnail": "/" + filepath.ToSlash(thumbPath),
	})
}
