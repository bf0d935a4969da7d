package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"tienda/db"
	"tienda/globals"
	"tienda/middleware"
	"tienda/models"
	"tienda/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	StoreID  string `json:"storeId,omitempty"`
}

func generateToken(m models.Merchant) (string, error) {
	claims := middleware.Claims{
		MerchantID: m.ID,
		StoreID:    m.StoreID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Register creates a merchant account bound to a store.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || len(input.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		return
	}

	count, err := db.MerchantsCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Register count error:", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "An account with that email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Register hash error:", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	merchant := models.Merchant{
		ID:           utils.NewID(),
		Email:        input.Email,
		PasswordHash: string(hash),
		StoreID:      input.StoreID,
		CreatedAt:    time.Now(),
	}
	if _, err := db.MerchantsCollection.InsertOne(ctx, merchant); err != nil {
		log.Println("Register InsertOne error:", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	token, err := generateToken(merchant)
	if err != nil {
		log.Println("Register token error:", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"token": token, "merchantId": merchant.ID})
}

// Login verifies credentials and issues a dashboard token.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var merchant models.Merchant
	err := db.MerchantsCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&merchant)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Println("Login FindOne error:", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := generateToken(merchant)
	if err != nil {
		log.Println("Login token error:", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "storeId": merchant.StoreID})
}

// Me returns the authenticated merchant's account.
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	merchantID := utils.GetMerchantIDFromRequest(r)
	if merchantID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var merchant models.Merchant
	if err := db.MerchantsCollection.FindOne(ctx, bson.M{"_id": merchantID}).Decode(&merchant); err != nil {
		http.Error(w, "Merchant not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, merchant)
}
