package orderhub

import (
	"log"
	"net/http"

	"tienda/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades a merchant dashboard connection and subscribes
// it to the store's order feed. Only the store's own merchant may listen.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		storeID := ps.ByName("storeId")

		token := r.Header.Get("Authorization")
		if token == "" {
			// browsers cannot set headers on websocket dials
			token = "Bearer " + r.URL.Query().Get("token")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil || claims.StoreID != storeID {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("orderhub upgrade:", err)
			return
		}

		client := &Client{
			Conn:    conn,
			Send:    make(chan []byte, 256),
			StoreID: storeID,
		}
		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the peer closing; dashboards don't send
// anything upstream.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
