package orderhub

import (
	"encoding/json"
	"log"
	"sync"

	"tienda/models"

	"github.com/gorilla/websocket"
)

// Client is one merchant dashboard connection subscribed to a store's
// order feed.
type Client struct {
	Conn    *websocket.Conn
	Send    chan []byte
	StoreID string
}

type broadcastMsg struct {
	StoreID string
	Data    []byte
}

// Hub fans new orders out to every dashboard watching the store.
type Hub struct {
	stores     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		stores:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.stores[c.StoreID] == nil {
				h.stores[c.StoreID] = make(map[*Client]bool)
			}
			h.stores[c.StoreID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.stores[c.StoreID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.stores[m.StoreID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.stores[m.StoreID], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.stores {
				for c := range conns {
					close(c.Send)
				}
			}
			h.stores = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects every client.
func (h *Hub) Stop() {
	close(h.done)
}

// orderEvent is the payload dashboards receive when an order comes in.
type orderEvent struct {
	Type         string  `json:"type"`
	OrderID      string  `json:"orderId"`
	CustomerName string  `json:"customerName"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
	DeliveryType string  `json:"deliveryType"`
	CreatedAt    int64   `json:"createdAt"`
}

// PublishOrder broadcasts a new order to the store's dashboards. Dropping
// the event when nobody listens is fine; the order is already persisted.
func (h *Hub) PublishOrder(order models.Order) {
	evt := orderEvent{
		Type:         "order_created",
		OrderID:      order.OrderID,
		CustomerName: order.Customer.Name,
		Total:        order.Total,
		Currency:     order.Currency,
		DeliveryType: order.Customer.DeliveryType,
		CreatedAt:    order.CreatedAt.Unix(),
	}
	data, err := json.Marshal(evt)
	if err != nil {
		log.Println("PublishOrder marshal error:", err)
		return
	}
	// after Stop the run loop is gone; don't block a checkout on the send
	select {
	case h.broadcast <- broadcastMsg{StoreID: order.StoreID, Data: data}:
	case <-h.done:
	}
}
