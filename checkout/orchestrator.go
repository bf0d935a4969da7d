package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"tienda/models"
	"tienda/shipping"
	"tienda/utils"
)

// ShippingToCoordinate labels a home delivery outside every zone: the cost
// is 0 in the numeric total but the message flags it for the store to
// arrange with the customer.
const ShippingToCoordinate = "to be coordinated"

// ValidateCustomer returns a user-facing message when the form cannot be
// submitted, or "" when it is valid. Name and phone are always required; the
// address only for home delivery.
func ValidateCustomer(c models.CustomerData) string {
	if strings.TrimSpace(c.Name) == "" {
		return "Please enter your name."
	}
	if strings.TrimSpace(c.Phone) == "" {
		return "Please enter your phone number."
	}
	if c.DeliveryType == models.DeliveryHome && strings.TrimSpace(c.Address) == "" {
		return "Please enter a delivery address."
	}
	return ""
}

// NormalizeCustomer applies the delivery-type rules: pickup orders carry no
// address or reference no matter what was typed, and a missing delivery type
// defaults to home delivery.
func NormalizeCustomer(c models.CustomerData) models.CustomerData {
	if c.DeliveryType == "" {
		c.DeliveryType = models.DeliveryHome
	}
	if c.DeliveryType == models.DeliveryPickup {
		c.Address = ""
		c.Reference = ""
	}
	return c
}

// ResolveShipping turns the quote into the final cost and label. Pickup is
// always free; home delivery uses the quote only when the address matched a
// zone, otherwise shipping is coordinated later and counts as 0.
func ResolveShipping(c models.CustomerData, quote shipping.State) (float64, string) {
	if c.DeliveryType == models.DeliveryPickup {
		return 0, "store pickup"
	}
	if quote.IsInDeliveryZone {
		label := quote.ZoneName
		if label == "" {
			label = "delivery"
		}
		return quote.ShippingCost, label
	}
	return 0, ShippingToCoordinate
}

// BuildOrderMessage renders the human-readable order summary sent over
// WhatsApp. Deterministic string building: same inputs, same text.
func BuildOrderMessage(store models.Store, cart models.CartState, customer models.CustomerData, shippingCost float64, shippingLabel string) string {
	cur := store.Currency
	if cur == "" {
		cur = "USD"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 *New order — %s*\n\n", store.Name)

	fmt.Fprintf(&b, "*Customer*\n")
	fmt.Fprintf(&b, "Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", customer.Phone)
	if customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", customer.Email)
	}
	b.WriteString("\n")

	if customer.DeliveryType == models.DeliveryPickup {
		b.WriteString("*Delivery*: pickup at store\n")
		if store.PickupAddress != "" {
			fmt.Fprintf(&b, "Store address: %s\n", store.PickupAddress)
		}
	} else {
		b.WriteString("*Delivery*: home delivery\n")
		fmt.Fprintf(&b, "Address: %s\n", customer.Address)
		if customer.Reference != "" {
			fmt.Fprintf(&b, "Reference: %s\n", customer.Reference)
		}
	}
	b.WriteString("\n*Products*\n")

	for _, it := range cart.Items {
		name := it.Name
		if it.Variant != nil && it.Variant.Name != "" {
			name = fmt.Sprintf("%s (%s)", it.Name, it.Variant.Name)
		}
		fmt.Fprintf(&b, "- %s x%d — %s %.2f = %s %.2f\n",
			name, it.Quantity, cur, it.UnitPrice(), cur, it.Subtotal())
	}

	fmt.Fprintf(&b, "\nSubtotal: %s %.2f\n", cur, cart.TotalPrice)
	if shippingLabel == ShippingToCoordinate {
		b.WriteString("Shipping: to be coordinated with the store\n")
	} else {
		fmt.Fprintf(&b, "Shipping: %s %.2f (%s)\n", cur, shippingCost, shippingLabel)
	}
	fmt.Fprintf(&b, "*Total: %s %.2f*\n", cur, cart.TotalPrice+shippingCost)

	if customer.PaymentMethod != "" {
		fmt.Fprintf(&b, "\nPayment: %s\n", customer.PaymentMethod)
	}
	if customer.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", customer.Notes)
	}
	return b.String()
}

// WhatsAppLink builds the wa.me deep link carrying the encoded message. The
// phone is normalized to digits only. An unconfigured phone yields "": the
// order text still exists, the handoff just has nowhere to go.
func WhatsAppLink(phone, message string) string {
	digits := utils.DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

// BuildOrder composes cart contents, form data and the shipping quote into a
// finalized order ready for persistence and handoff.
func BuildOrder(store models.Store, sessionID string, cart models.CartState, customer models.CustomerData, quote shipping.State) models.Order {
	customer = NormalizeCustomer(customer)
	cost, label := ResolveShipping(customer, quote)
	message := BuildOrderMessage(store, cart, customer, cost, label)

	return models.Order{
		OrderID:       utils.NewID(),
		StoreID:       store.ID,
		SessionID:     sessionID,
		Items:         cart.Items,
		Customer:      customer,
		Subtotal:      cart.TotalPrice,
		ShippingCost:  cost,
		ShippingLabel: label,
		Total:         cart.TotalPrice + cost,
		Currency:      store.Currency,
		Message:       message,
		WhatsAppURL:   WhatsAppLink(store.WhatsAppPhone, message),
		Status:        "pending",
		CreatedAt:     time.Now(),
	}
}
