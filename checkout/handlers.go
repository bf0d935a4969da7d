package checkout

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tienda/cart"
	"tienda/db"
	"tienda/models"
	"tienda/shipping"
	"tienda/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cartClearDelay gives the WhatsApp handoff time to initiate before the cart
// is torn down. The cart must never be cleared before the handoff starts.
const cartClearDelay = 1500 * time.Millisecond

// Publisher pushes a new order to whoever is listening (merchant
// dashboards).
type Publisher interface {
	PublishOrder(order models.Order)
}

// Handler drives checkout submission and order lookups.
type Handler struct {
	Carts    *cart.Manager
	Shipping *shipping.Manager
	Hub      Publisher
}

func NewHandler(carts *cart.Manager, ship *shipping.Manager, hub Publisher) *Handler {
	return &Handler{Carts: carts, Shipping: ship, Hub: hub}
}

// SubmitOrder validates the checkout form, composes the final order, hands
// it off to WhatsApp and schedules the cart teardown.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := utils.EnsureSessionID(w, r)
	storeID := ps.ByName("storeId")

	var customer models.CustomerData
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		log.Println("SubmitOrder decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	customer = NormalizeCustomer(customer)

	if msg := ValidateCustomer(customer); msg != "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"_id": storeID}).Decode(&store); err != nil {
		http.Error(w, "Store not found", http.StatusNotFound)
		return
	}

	cartStore := h.Carts.GetOrCreate(ctx, sessionID)
	cartState := cartStore.Snapshot()
	if len(cartState.Items) == 0 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Your cart is empty.")
		return
	}

	quote := h.Shipping.GetOrCreate(sessionID, storeID).Snapshot()
	order := BuildOrder(store, sessionID, cartState, customer, quote)

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("SubmitOrder InsertOne error:", err)
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	if h.Hub != nil {
		h.Hub.PublishOrder(order)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"orderId":     order.OrderID,
		"whatsappUrl": order.WhatsAppURL,
		"total":       order.Total,
		"message":     order.Message,
	})

	// tear down after the handoff had a chance to open
	time.AfterFunc(cartClearDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cartStore.Clear(ctx)
		cartStore.CloseCheckout()
		h.Shipping.Drop(sessionID, storeID)
	})
}

func (h *Handler) findOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderQR renders the order's WhatsApp link as a PNG QR code so the
// handoff can also happen by scanning from another device.
func (h *Handler) GetOrderQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := h.findOrder(ctx, ps.ByName("orderId"))
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if order.WhatsAppURL == "" {
		http.Error(w, "Store has no WhatsApp number configured", http.StatusConflict)
		return
	}

	png, err := qrcode.Encode(order.WhatsAppURL, qrcode.Medium, 256)
	if err != nil {
		log.Println("GetOrderQR encode error:", err)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// GetOrderReceipt renders a printable PDF summary of the order.
func (h *Handler) GetOrderReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := h.findOrder(ctx, ps.ByName("orderId"))
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"_id": order.StoreID}).Decode(&store); err != nil {
		log.Println("GetOrderReceipt store lookup error:", err)
	}

	buf, err := BuildReceiptPDF(*order, store)
	if err != nil {
		log.Println("GetOrderReceipt pdf error:", err)
		http.Error(w, "Failed to generate receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=order-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ListStoreOrders returns the latest orders for a store. Merchant-only.
func (h *Handler) ListStoreOrders(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	storeID := ps.ByName("storeId")

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := db.OrdersCollection.Find(ctx, bson.M{"storeId": storeID}, opts)
	if err != nil {
		log.Println("ListStoreOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("ListStoreOrders cursor.All error:", err)
		http.Error(w, "Error reading order data", http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}
