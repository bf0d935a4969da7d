package checkout

import (
	"strings"
	"testing"

	"tienda/models"
	"tienda/shipping"
)

func sampleCart() models.CartState {
	items := []models.CartItem{
		{
			ID: "p1-m", ProductID: "p1", Name: "Camiseta", Price: 20, Currency: "PEN",
			Quantity: 2, Variant: &models.Variant{ID: "m", Name: "Talla M", Price: 25},
		},
		{ID: "p2", ProductID: "p2", Name: "Gorra", Price: 50, Currency: "PEN", Quantity: 1},
	}
	total := 0.0
	count := 0
	for _, it := range items {
		total += it.Subtotal()
		count += it.Quantity
	}
	return models.CartState{Items: items, TotalItems: count, TotalPrice: total}
}

func sampleStore() models.Store {
	return models.Store{
		ID: "s1", Name: "Mi Tienda", WhatsAppPhone: "+51 987-654-321",
		Currency: "PEN", PickupAddress: "Av. Principal 100",
	}
}

func homeCustomer() models.CustomerData {
	return models.CustomerData{
		Name: "Ana", Phone: "+51 999 888 777",
		Address: "Av. Siempre Viva 742", DeliveryType: models.DeliveryHome,
	}
}

func TestValidateCustomer(t *testing.T) {
	c := homeCustomer()
	if msg := ValidateCustomer(c); msg != "" {
		t.Errorf("valid form rejected: %q", msg)
	}

	c.Name = "  "
	if ValidateCustomer(c) == "" {
		t.Error("missing name must block submission")
	}

	c = homeCustomer()
	c.Phone = ""
	if ValidateCustomer(c) == "" {
		t.Error("missing phone must block submission")
	}

	c = homeCustomer()
	c.Address = ""
	if ValidateCustomer(c) == "" {
		t.Error("home delivery without address must block submission")
	}

	// pickup needs no address
	c = models.CustomerData{Name: "Ana", Phone: "1", DeliveryType: models.DeliveryPickup}
	if msg := ValidateCustomer(c); msg != "" {
		t.Errorf("pickup without address should pass, got %q", msg)
	}
}

func TestPickupForcesAddressEmpty(t *testing.T) {
	c := models.CustomerData{
		Name: "Ana", Phone: "1", Address: "Av. Algo 123", Reference: "puerta azul",
		DeliveryType: models.DeliveryPickup,
	}
	c = NormalizeCustomer(c)
	if c.Address != "" || c.Reference != "" {
		t.Errorf("pickup must wipe address fields: %+v", c)
	}
}

func TestResolveShipping(t *testing.T) {
	inZone := shipping.State{IsInDeliveryZone: true, ShippingCost: 15, ZoneName: "Centro"}
	outOfZone := shipping.State{IsInDeliveryZone: false, ShippingCost: 0}

	cost, label := ResolveShipping(homeCustomer(), inZone)
	if cost != 15 || label != "Centro" {
		t.Errorf("in-zone home delivery: got %f %q", cost, label)
	}

	cost, label = ResolveShipping(homeCustomer(), outOfZone)
	if cost != 0 || label != ShippingToCoordinate {
		t.Errorf("out-of-zone home delivery: got %f %q", cost, label)
	}

	pickup := models.CustomerData{DeliveryType: models.DeliveryPickup}
	cost, label = ResolveShipping(pickup, inZone)
	if cost != 0 {
		t.Errorf("pickup must always cost 0, got %f", cost)
	}
	if label != "store pickup" {
		t.Errorf("pickup label: %q", label)
	}
}

func TestOrderTotals(t *testing.T) {
	cart := models.CartState{
		Items:      []models.CartItem{{ID: "p1", ProductID: "p1", Name: "Item", Price: 100, Quantity: 1}},
		TotalItems: 1,
		TotalPrice: 100,
	}
	quote := shipping.State{IsInDeliveryZone: true, ShippingCost: 15, ZoneName: "Centro"}

	order := BuildOrder(sampleStore(), "sess", cart, homeCustomer(), quote)
	if order.Total != 115 {
		t.Errorf("home delivery total = %f, want 115", order.Total)
	}

	pickup := models.CustomerData{Name: "Ana", Phone: "1", DeliveryType: models.DeliveryPickup}
	order = BuildOrder(sampleStore(), "sess", cart, pickup, quote)
	if order.Total != 100 {
		t.Errorf("pickup total = %f, want 100", order.Total)
	}
	if order.Status != "pending" {
		t.Errorf("new order status = %q", order.Status)
	}
}

func TestBuildOrderMessageContent(t *testing.T) {
	msg := BuildOrderMessage(sampleStore(), sampleCart(), homeCustomer(), 15, "Centro")

	for _, want := range []string{
		"Mi Tienda",
		"Ana",
		"Av. Siempre Viva 742",
		"Camiseta (Talla M) x2",
		"PEN 25.00",
		"Gorra x1",
		"Subtotal: PEN 100.00",
		"Shipping: PEN 15.00 (Centro)",
		"Total: PEN 115.00",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildOrderMessageToCoordinate(t *testing.T) {
	msg := BuildOrderMessage(sampleStore(), sampleCart(), homeCustomer(), 0, ShippingToCoordinate)
	if !strings.Contains(msg, "to be coordinated") {
		t.Error("out-of-zone shipping must be flagged in the message")
	}
	if !strings.Contains(msg, "Total: PEN 100.00") {
		t.Errorf("coordinated shipping counts as 0 in the total:\n%s", msg)
	}
}

func TestBuildOrderMessageDeterministic(t *testing.T) {
	a := BuildOrderMessage(sampleStore(), sampleCart(), homeCustomer(), 15, "Centro")
	b := BuildOrderMessage(sampleStore(), sampleCart(), homeCustomer(), 15, "Centro")
	if a != b {
		t.Error("message building must be deterministic")
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+51 987-654-321", "hola mundo")
	if !strings.HasPrefix(link, "https://wa.me/51987654321?text=") {
		t.Errorf("unexpected link: %q", link)
	}
	if strings.Contains(link, " ") {
		t.Error("message must be URL-encoded")
	}
	if WhatsAppLink("", "hola") != "" {
		t.Error("no phone configured means no link")
	}
	if WhatsAppLink("abc-def", "hola") != "" {
		t.Error("a phone with no digits means no link")
	}
}
