package models

// Variant is the product option chosen for a cart line (size, color, etc).
type Variant struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// CartItem is a single line in a visitor's cart. The line ID is derived from
// the product and variant so the same product+variant always collapses into
// one line.
type CartItem struct {
	ID        string   `json:"id" bson:"id"`
	ProductID string   `json:"productId" bson:"productId"`
	Name      string   `json:"name" bson:"name"`
	Price     float64  `json:"price" bson:"price"` // unit price
	Currency  string   `json:"currency" bson:"currency"`
	Image     string   `json:"image,omitempty" bson:"image,omitempty"`
	Slug      string   `json:"slug,omitempty" bson:"slug,omitempty"`
	Quantity  int      `json:"quantity" bson:"quantity"`
	Variant   *Variant `json:"variant,omitempty" bson:"variant,omitempty"`
}

// UnitPrice returns the variant price when a variant is chosen, otherwise the
// base product price.
func (it CartItem) UnitPrice() float64 {
	if it.Variant != nil {
		return it.Variant.Price
	}
	return it.Price
}

// Subtotal is the line total for this item.
func (it CartItem) Subtotal() float64 {
	return it.UnitPrice() * float64(it.Quantity)
}

// CartState is the full cart snapshot exposed to the storefront. TotalItems
// and TotalPrice are derived from Items on every mutation and are never
// stored independently.
type CartState struct {
	Items          []CartItem `json:"items"`
	IsOpen         bool       `json:"isOpen"`
	IsCheckoutOpen bool       `json:"isCheckoutOpen"`
	TotalItems     int        `json:"totalItems"`
	TotalPrice     float64    `json:"totalPrice"`
}
