package zones

import (
	"encoding/json"
	"errors"
	"fmt"

	"tienda/models"

	"go.mongodb.org/mongo-driver/bson"
)

// The dashboard's documents carry the shape under a single "coordenadas"
// field: an array of points for polygons, a {center,radius} object for
// circles. Both decoders below resolve that union and reject anything
// malformed so the matcher only ever sees well-formed zones.

type zoneDoc struct {
	ID            string          `bson:"_id,omitempty"`
	StoreID       string          `bson:"storeId"`
	Name          string          `bson:"nombre"`
	Type          models.ZoneType `bson:"tipo"`
	Price         float64         `bson:"precio"`
	Coordinates   bson.RawValue   `bson:"coordenadas"`
	EstimatedTime string          `bson:"estimatedTime,omitempty"`
}

func zoneFromDoc(raw bson.Raw) (models.DeliveryZone, error) {
	var doc zoneDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return models.DeliveryZone{}, err
	}

	zone := models.DeliveryZone{
		ID:            doc.ID,
		StoreID:       doc.StoreID,
		Name:          doc.Name,
		Type:          doc.Type,
		Price:         doc.Price,
		EstimatedTime: doc.EstimatedTime,
	}

	switch doc.Type {
	case models.ZonePolygon:
		var points []models.Point
		if err := doc.Coordinates.Unmarshal(&points); err != nil {
			return models.DeliveryZone{}, fmt.Errorf("zone %s: bad polygon coordinates: %w", doc.ID, err)
		}
		if len(points) < 3 {
			return models.DeliveryZone{}, fmt.Errorf("zone %s: polygon needs at least 3 points", doc.ID)
		}
		zone.Polygon = points
	case models.ZoneCircle:
		var circle models.Circle
		if err := doc.Coordinates.Unmarshal(&circle); err != nil {
			return models.DeliveryZone{}, fmt.Errorf("zone %s: bad circle coordinates: %w", doc.ID, err)
		}
		if circle.Radius <= 0 {
			return models.DeliveryZone{}, fmt.Errorf("zone %s: circle radius must be positive", doc.ID)
		}
		zone.Circle = &circle
	default:
		return models.DeliveryZone{}, fmt.Errorf("zone %s: unknown tipo %q", doc.ID, doc.Type)
	}

	return zone, nil
}

func zoneToDoc(z models.DeliveryZone) bson.M {
	doc := bson.M{
		"_id":     z.ID,
		"storeId": z.StoreID,
		"nombre":  z.Name,
		"tipo":    z.Type,
		"precio":  z.Price,
	}
	if z.EstimatedTime != "" {
		doc["estimatedTime"] = z.EstimatedTime
	}
	switch z.Type {
	case models.ZonePolygon:
		doc["coordenadas"] = z.Polygon
	case models.ZoneCircle:
		doc["coordenadas"] = z.Circle
	}
	return doc
}

// zonePayload is the merchant-facing JSON shape for creating a zone.
type zonePayload struct {
	Name          string          `json:"nombre"`
	Type          models.ZoneType `json:"tipo"`
	Price         float64         `json:"precio"`
	Coordinates   json.RawMessage `json:"coordenadas"`
	EstimatedTime string          `json:"estimatedTime"`
}

func (p zonePayload) toZone() (models.DeliveryZone, error) {
	if p.Name == "" {
		return models.DeliveryZone{}, errors.New("zone name is required")
	}
	if p.Price < 0 {
		return models.DeliveryZone{}, errors.New("zone price cannot be negative")
	}

	zone := models.DeliveryZone{
		Name:          p.Name,
		Type:          p.Type,
		Price:         p.Price,
		EstimatedTime: p.EstimatedTime,
	}

	switch p.Type {
	case models.ZonePolygon:
		var points []models.Point
		if err := json.Unmarshal(p.Coordinates, &points); err != nil {
			return models.DeliveryZone{}, errors.New("polygon coordinates must be an array of points")
		}
		if len(points) < 3 {
			return models.DeliveryZone{}, errors.New("polygon needs at least 3 points")
		}
		zone.Polygon = points
	case models.ZoneCircle:
		var circle models.Circle
		if err := json.Unmarshal(p.Coordinates, &circle); err != nil {
			return models.DeliveryZone{}, errors.New("circle coordinates must be a center and radius")
		}
		if circle.Radius <= 0 {
			return models.DeliveryZone{}, errors.New("circle radius must be positive")
		}
		zone.Circle = &circle
	default:
		return models.DeliveryZone{}, fmt.Errorf("unknown zone tipo %q", p.Type)
	}

	return zone, nil
}
