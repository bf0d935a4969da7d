package models

import "time"

// Delivery types controlling whether address fields and shipping apply.
const (
	DeliveryHome   = "home_delivery"
	DeliveryPickup = "store_pickup"
)

// CustomerData is the checkout form. When DeliveryType is store_pickup the
// address and reference are forced empty before the order is built.
type CustomerData struct {
	Name          string `json:"name" bson:"name"`
	Phone         string `json:"phone" bson:"phone"`
	Email         string `json:"email,omitempty" bson:"email,omitempty"`
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
	Reference     string `json:"reference,omitempty" bson:"reference,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	Notes         string `json:"notes,omitempty" bson:"notes,omitempty"`
	DeliveryType  string `json:"deliveryType" bson:"deliveryType"`
}

// Order is a finalized order as handed off to the store's WhatsApp channel.
type Order struct {
	OrderID       string       `json:"orderId" bson:"orderId"`
	StoreID       string       `json:"storeId" bson:"storeId"`
	SessionID     string       `json:"sessionId" bson:"sessionId"`
	Items         []CartItem   `json:"items" bson:"items"`
	Customer      CustomerData `json:"customer" bson:"customer"`
	Subtotal      float64      `json:"subtotal" bson:"subtotal"`
	ShippingCost  float64      `json:"shippingCost" bson:"shippingCost"`
	ShippingLabel string       `json:"shippingLabel" bson:"shippingLabel"` // zone name, pickup, or "to be coordinated"
	Total         float64      `json:"total" bson:"total"`
	Currency      string       `json:"currency" bson:"currency"`
	Message       string       `json:"message,omitempty" bson:"message,omitempty"`
	WhatsAppURL   string       `json:"whatsappUrl,omitempty" bson:"whatsappUrl,omitempty"`
	Status        string       `json:"status" bson:"status"`
	CreatedAt     time.Time    `json:"createdAt" bson:"createdAt"`
}
