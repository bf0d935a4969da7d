package geo

import (
	"math"

	"tienda/models"
)

// EarthRadiusMeters is the mean earth radius used for haversine distances.
const EarthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance in meters between two
// coordinates.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// PointInPolygon reports whether the coordinate lies inside the polygon using
// the standard ray-casting crossing count. Self-intersecting polygons get no
// special handling.
func PointInPolygon(lat, lng float64, polygon []models.Point) bool {
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		if (pi.Lat > lat) != (pj.Lat > lat) &&
			lng < (pj.Lng-pi.Lng)*(lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lng {
			inside = !inside
		}
		j = i
	}
	return inside
}

// PointInCircle reports whether the coordinate lies within the circle's
// radius (meters).
func PointInCircle(lat, lng float64, c models.Circle) bool {
	return HaversineMeters(lat, lng, c.Center.Lat, c.Center.Lng) <= c.Radius
}

// MatchZone tests a coordinate against the store's zones in their given order
// and returns the first match. No overlap resolution: first match wins. A
// miss returns an out-of-coverage result, which is a valid terminal state,
// not an error.
func MatchZone(lat, lng float64, zones []models.DeliveryZone) models.LocationResult {
	for i := range zones {
		z := zones[i]
		var contains bool
		switch z.Type {
		case models.ZonePolygon:
			contains = len(z.Polygon) >= 3 && PointInPolygon(lat, lng, z.Polygon)
		case models.ZoneCircle:
			contains = z.Circle != nil && PointInCircle(lat, lng, *z.Circle)
		}
		if contains {
			return models.LocationResult{
				InDeliveryZone: true,
				Zone:           &zones[i],
				ShippingCost:   z.Price,
				EstimatedTime:  z.EstimatedTime,
			}
		}
	}
	return models.LocationResult{InDeliveryZone: false, ShippingCost: 0}
}
