package zones

import (
	"encoding/json"
	"testing"

	"tienda/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestZoneFromDocPolygon(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":     "z1",
		"storeId": "s1",
		"nombre":  "Centro",
		"tipo":    "poligono",
		"precio":  12.5,
		"coordenadas": bson.A{
			bson.M{"lat": 0.0, "lng": 0.0},
			bson.M{"lat": 0.0, "lng": 2.0},
			bson.M{"lat": 2.0, "lng": 2.0},
		},
		"estimatedTime": "45 min",
	})
	if err != nil {
		t.Fatal(err)
	}

	zone, err := zoneFromDoc(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if zone.Type != models.ZonePolygon || len(zone.Polygon) != 3 {
		t.Errorf("unexpected zone: %+v", zone)
	}
	if zone.Price != 12.5 || zone.EstimatedTime != "45 min" {
		t.Errorf("fields not carried: %+v", zone)
	}
}

func TestZoneFromDocCircle(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":     "z2",
		"storeId": "s1",
		"nombre":  "Anillo",
		"tipo":    "circulo",
		"precio":  8.0,
		"coordenadas": bson.M{
			"center": bson.M{"lat": -12.05, "lng": -77.04},
			"radius": 3000.0,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	zone, err := zoneFromDoc(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if zone.Circle == nil || zone.Circle.Radius != 3000 {
		t.Errorf("circle not decoded: %+v", zone)
	}
}

func TestZoneFromDocRejectsMalformed(t *testing.T) {
	cases := []bson.M{
		// unknown tipo
		{"_id": "a", "tipo": "hexagono", "coordenadas": bson.A{}},
		// polygon with too few points
		{"_id": "b", "tipo": "poligono", "coordenadas": bson.A{bson.M{"lat": 0.0, "lng": 0.0}}},
		// circle without radius
		{"_id": "c", "tipo": "circulo", "coordenadas": bson.M{"center": bson.M{"lat": 0.0, "lng": 0.0}}},
		// polygon with a circle body
		{"_id": "d", "tipo": "poligono", "coordenadas": bson.M{"center": bson.M{"lat": 0.0, "lng": 0.0}, "radius": 10.0}},
	}
	for _, doc := range cases {
		raw, err := bson.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := zoneFromDoc(raw); err == nil {
			t.Errorf("document %v should have been rejected", doc)
		}
	}
}

func TestZonePayloadUnion(t *testing.T) {
	var p zonePayload
	body := `{"nombre":"Centro","tipo":"poligono","precio":10,
		"coordenadas":[{"lat":0,"lng":0},{"lat":0,"lng":2},{"lat":2,"lng":2}]}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatal(err)
	}
	zone, err := p.toZone()
	if err != nil {
		t.Fatalf("polygon payload rejected: %v", err)
	}
	if len(zone.Polygon) != 3 {
		t.Errorf("polygon not decoded: %+v", zone)
	}

	body = `{"nombre":"Anillo","tipo":"circulo","precio":8,
		"coordenadas":{"center":{"lat":-12.05,"lng":-77.04},"radius":3000}}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatal(err)
	}
	zone, err = p.toZone()
	if err != nil {
		t.Fatalf("circle payload rejected: %v", err)
	}
	if zone.Circle == nil || zone.Circle.Radius != 3000 {
		t.Errorf("circle not decoded: %+v", zone)
	}
}

func TestZonePayloadValidation(t *testing.T) {
	bad := []string{
		`{"tipo":"poligono","coordenadas":[]}`,                               // no name
		`{"nombre":"x","tipo":"poligono","precio":-1,"coordenadas":[]}`,      // negative price
		`{"nombre":"x","tipo":"circulo","coordenadas":{"radius":0}}`,         // zero radius
		`{"nombre":"x","tipo":"otro","coordenadas":[]}`,                      // unknown tipo
		`{"nombre":"x","tipo":"poligono","coordenadas":{"radius":5}}`,        // shape mismatch
		`{"nombre":"x","tipo":"poligono","coordenadas":[{"lat":0,"lng":0}]}`, // too few points
	}
	for _, body := range bad {
		var p zonePayload
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			t.Fatalf("test payload does not parse: %v", err)
		}
		if _, err := p.toZone(); err == nil {
			t.Errorf("payload should have been rejected: %s", body)
		}
	}
}
