package orderhub

import (
	"encoding/json"
	"testing"
	"time"

	"tienda/models"
)

func TestHubRegisterPublishUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake dashboard client
	client := &Client{
		Send:    make(chan []byte, 10),
		StoreID: "store1",
	}
	hub.register <- client

	order := models.Order{
		OrderID:   "o1",
		StoreID:   "store1",
		Customer:  models.CustomerData{Name: "Ana", DeliveryType: models.DeliveryHome},
		Total:     115,
		Currency:  "PEN",
		CreatedAt: time.Now(),
	}
	hub.PublishOrder(order)

	select {
	case got := <-client.Send:
		var evt orderEvent
		if err := json.Unmarshal(got, &evt); err != nil {
			t.Fatalf("invalid event payload: %v", err)
		}
		if evt.Type != "order_created" || evt.OrderID != "o1" || evt.Total != 115 {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for order event")
	}

	hub.unregister <- client
}

func TestPublishAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.PublishOrder(models.Order{OrderID: "o1", StoreID: "store1", CreatedAt: time.Now()})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("PublishOrder blocked after the hub stopped")
	}
}

func TestHubIsolatesStores(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	other := &Client{
		Send:    make(chan []byte, 10),
		StoreID: "store2",
	}
	hub.register <- other

	hub.PublishOrder(models.Order{OrderID: "o1", StoreID: "store1", CreatedAt: time.Now()})

	select {
	case <-other.Send:
		t.Fatal("store2 dashboard received store1's order")
	case <-time.After(100 * time.Millisecond):
	}
}
