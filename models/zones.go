package models

// ZoneType discriminates the two delivery zone shapes.
type ZoneType string

const (
	// Legacy document values kept as stored by the dashboard.
	ZonePolygon ZoneType = "poligono"
	ZoneCircle  ZoneType = "circulo"
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Circle is a circular zone shape. Radius is in meters.
type Circle struct {
	Center Point   `json:"center" bson:"center"`
	Radius float64 `json:"radius" bson:"radius"`
}

// DeliveryZone is reference data loaded per store: a shape plus a flat
// shipping price. Zones are matched in document order, first match wins.
//
// The stored documents use the dashboard's original field names (nombre,
// tipo, precio, coordenadas); the coordenadas field is a union decoded at
// the zones package boundary into Polygon or Circle.
type DeliveryZone struct {
	ID            string   `json:"id" bson:"_id,omitempty"`
	StoreID       string   `json:"storeId" bson:"storeId"`
	Name          string   `json:"nombre" bson:"nombre"`
	Type          ZoneType `json:"tipo" bson:"tipo"`
	Price         float64  `json:"precio" bson:"precio"`
	Polygon       []Point  `json:"coordenadas,omitempty" bson:"-"`
	Circle        *Circle  `json:"circulo,omitempty" bson:"-"`
	EstimatedTime string   `json:"estimatedTime,omitempty" bson:"estimatedTime,omitempty"`
}

// LocationResult is the outcome of matching a coordinate against a store's
// zones. Ephemeral: recomputed per query, never persisted. A miss is a valid
// terminal state ("out of coverage"), not an error.
type LocationResult struct {
	InDeliveryZone bool          `json:"inDeliveryZone"`
	Zone           *DeliveryZone `json:"zone,omitempty"`
	ShippingCost   float64       `json:"shippingCost"`
	EstimatedTime  string        `json:"estimatedTime,omitempty"`
}
