package middleware

import (
	"context"
	"fmt"
	"net/http"

	"tienda/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims for merchant dashboard sessions.
type Claims struct {
	MerchantID string `json:"merchantId"`
	StoreID    string `json:"storeId"`
	jwt.RegisteredClaims
}

// ValidateJWT parses a "Bearer ..." header value into claims.
func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Authenticate guards merchant-only routes.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), globals.MerchantIDKey, claims.MerchantID)
		ctx = context.WithValue(ctx, globals.StoreIDKey, claims.StoreID)
		next(w, r.WithContext(ctx), ps)
	}
}
