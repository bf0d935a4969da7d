package models

import "time"

// Store is a tenant's storefront configuration.
type Store struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Slug          string    `json:"slug" bson:"slug"`
	Name          string    `json:"name" bson:"name"`
	WhatsAppPhone string    `json:"whatsappPhone" bson:"whatsappPhone"`
	Currency      string    `json:"currency" bson:"currency"`
	ThemeID       string    `json:"themeId" bson:"themeId"`
	PickupAddress string    `json:"pickupAddress,omitempty" bson:"pickupAddress,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Merchant is a store owner account.
type Merchant struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	StoreID      string    `json:"storeId" bson:"storeId"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
