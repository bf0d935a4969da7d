package routes

import (
	"net/http"

	"tienda/auth"
	"tienda/cart"
	"tienda/catalog"
	"tienda/checkout"
	"tienda/middleware"
	"tienda/orderhub"
	"tienda/ratelim"
	"tienda/shipping"
	"tienda/stores"
	"tienda/zones"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/register", auth.Register)
	router.POST("/api/v1/auth/login", auth.Login)
	router.GET("/api/v1/auth/me", middleware.Authenticate(auth.Me))
}

func AddStoreRoutes(router *httprouter.Router) {
	router.GET("/api/v1/storefront/:slug", stores.GetStoreBySlug)
	router.GET("/api/v1/stores/:storeId", stores.GetStore)
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/v1/stores/:storeId/categories", catalog.GetStoreCategories)
	router.GET("/api/v1/stores/:storeId/products", catalog.GetStoreProducts)
	router.GET("/api/v1/stores/:storeId/products/:slug", catalog.GetProduct)
	router.POST("/api/v1/stores/:storeId/products/:productId/image",
		middleware.Authenticate(catalog.UploadProductImage))
}

func AddZoneRoutes(router *httprouter.Router, h *zones.Handler) {
	router.GET("/api/v1/stores/:storeId/zones", h.GetStoreZones)
	router.POST("/api/v1/stores/:storeId/zones", middleware.Authenticate(h.CreateZone))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/v1/cart", h.GetCart)
	router.POST("/api/v1/cart/items", h.AddItem)
	router.PUT("/api/v1/cart/items/:itemId", h.UpdateQuantity)
	router.DELETE("/api/v1/cart/items/:itemId", h.RemoveItem)
	router.DELETE("/api/v1/cart", h.ClearCart)

	router.POST("/api/v1/cart/open", h.OpenCart)
	router.POST("/api/v1/cart/close", h.CloseCart)
	router.POST("/api/v1/cart/toggle", h.ToggleCart)
	router.POST("/api/v1/cart/checkout/open", h.OpenCheckout)
	router.POST("/api/v1/cart/checkout/close", h.CloseCheckout)
}

// Shipping endpoints sit behind the rate limiter: every keystroke-driven
// client eventually lands here and geocoding is the expensive hop.
func AddShippingRoutes(router *httprouter.Router, h *shipping.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/v1/stores/:storeId/shipping", h.GetState)
	router.POST("/api/v1/stores/:storeId/shipping/coordinates", rl.Limit(h.PostCoordinates))
	router.POST("/api/v1/stores/:storeId/shipping/address", rl.Limit(h.PostAddress))
	router.POST("/api/v1/stores/:storeId/shipping/blur", rl.Limit(h.PostBlur))
	router.DELETE("/api/v1/stores/:storeId/shipping", h.Delete)
}

func AddCheckoutRoutes(router *httprouter.Router, h *checkout.Handler) {
	router.POST("/api/v1/stores/:storeId/checkout", h.SubmitOrder)
	router.GET("/api/v1/stores/:storeId/orders", middleware.Authenticate(h.ListStoreOrders))
	router.GET("/api/v1/orders/:orderId/qr", h.GetOrderQR)
	router.GET("/api/v1/orders/:orderId/receipt", h.GetOrderReceipt)
}

func AddOrderFeedRoutes(router *httprouter.Router, hub *orderhub.Hub) {
	router.GET("/ws/orders/:storeId", orderhub.WebSocketHandler(hub))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}
