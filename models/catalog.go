package models

import "time"

// Product is a catalog entry owned by a store.
type Product struct {
	ProductID   string    `json:"productId" bson:"_id,omitempty"`
	StoreID     string    `json:"storeId" bson:"storeId"`
	Name        string    `json:"name" bson:"name"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Currency    string    `json:"currency" bson:"currency"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	Variants    []Variant `json:"variants,omitempty" bson:"variants,omitempty"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Category groups products inside a store.
type Category struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	StoreID string `json:"storeId" bson:"storeId"`
	Name    string `json:"name" bson:"name"`
	Slug    string `json:"slug" bson:"slug"`
	Order   int    `json:"order" bson:"order"`
}
