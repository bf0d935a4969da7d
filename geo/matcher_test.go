package geo

import (
	"math"
	"testing"

	"tienda/models"
)

func squareZone(id string, price float64) models.DeliveryZone {
	return models.DeliveryZone{
		ID:    id,
		Name:  "square " + id,
		Type:  models.ZonePolygon,
		Price: price,
		Polygon: []models.Point{
			{Lat: 0, Lng: 0},
			{Lat: 0, Lng: 2},
			{Lat: 2, Lng: 2},
			{Lat: 2, Lng: 0},
		},
	}
}

func TestPointInPolygon(t *testing.T) {
	square := squareZone("z1", 10).Polygon

	if !PointInPolygon(1, 1, square) {
		t.Error("centroid (1,1) should be inside the square")
	}
	if PointInPolygon(5, 5, square) {
		t.Error("(5,5) is far outside the bounding box")
	}
	if PointInPolygon(-1, 1, square) {
		t.Error("(-1,1) is outside")
	}
}

func TestPointInPolygonDegenerate(t *testing.T) {
	if PointInPolygon(1, 1, nil) {
		t.Error("empty polygon contains nothing")
	}
	if PointInPolygon(1, 1, []models.Point{{Lat: 0, Lng: 0}, {Lat: 2, Lng: 2}}) {
		t.Error("two-point polygon contains nothing")
	}
}

func TestHaversineMeters(t *testing.T) {
	// one degree of latitude is ~111.2 km
	d := HaversineMeters(0, 0, 1, 0)
	if math.Abs(d-111195) > 200 {
		t.Errorf("1 degree latitude = %f m, want ~111195", d)
	}
	if HaversineMeters(10, 20, 10, 20) != 0 {
		t.Error("distance to self should be 0")
	}
}

func TestPointInCircle(t *testing.T) {
	c := models.Circle{Center: models.Point{Lat: 0, Lng: 0}, Radius: 1000}

	// ~500m north of center (0.0045 degrees latitude)
	if !PointInCircle(0.0045, 0, c) {
		t.Error("point ~500m from center should be inside a 1000m circle")
	}
	// ~2km north
	if PointInCircle(0.018, 0, c) {
		t.Error("point ~2km from center should be outside a 1000m circle")
	}
}

func TestMatchZoneFirstMatchWins(t *testing.T) {
	// both zones contain (1,1); the first in the list must win even though
	// the second is cheaper
	zones := []models.DeliveryZone{squareZone("a", 15), squareZone("b", 5)}

	res := MatchZone(1, 1, zones)
	if !res.InDeliveryZone {
		t.Fatal("expected a zone match")
	}
	if res.Zone.ID != "a" {
		t.Errorf("expected first zone, got %q", res.Zone.ID)
	}
	if res.ShippingCost != 15 {
		t.Errorf("expected cost 15, got %f", res.ShippingCost)
	}
}

func TestMatchZoneMiss(t *testing.T) {
	zones := []models.DeliveryZone{squareZone("a", 15)}

	res := MatchZone(50, 50, zones)
	if res.InDeliveryZone {
		t.Error("point outside every zone must not match")
	}
	if res.ShippingCost != 0 {
		t.Errorf("out-of-coverage cost must be 0, got %f", res.ShippingCost)
	}
	if res.Zone != nil {
		t.Error("no zone should be attached on a miss")
	}
}

func TestMatchZoneCircle(t *testing.T) {
	zones := []models.DeliveryZone{
		{
			ID:            "c1",
			Type:          models.ZoneCircle,
			Price:         7.5,
			Circle:        &models.Circle{Center: models.Point{Lat: 0, Lng: 0}, Radius: 1000},
			EstimatedTime: "30-45 min",
		},
	}

	res := MatchZone(0.0045, 0, zones)
	if !res.InDeliveryZone || res.ShippingCost != 7.5 {
		t.Fatalf("expected circle match with cost 7.5, got %+v", res)
	}
	if res.EstimatedTime != "30-45 min" {
		t.Errorf("estimated time not carried: %q", res.EstimatedTime)
	}
}
