package shipping

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tienda/geocode"
	"tienda/models"
)

type fakeGeocoder struct {
	mu      sync.Mutex
	calls   int
	results map[string]*geocode.LatLng
	err     error
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (*geocode.LatLng, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results[address], nil
}

func (f *fakeGeocoder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeZones struct {
	zones []models.DeliveryZone
	err   error
}

func (f *fakeZones) ZonesFor(context.Context, string) ([]models.DeliveryZone, error) {
	return f.zones, f.err
}

func squareZones(price float64) []models.DeliveryZone {
	return []models.DeliveryZone{{
		ID:    "z1",
		Name:  "Centro",
		Type:  models.ZonePolygon,
		Price: price,
		Polygon: []models.Point{
			{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 2, Lng: 2}, {Lat: 2, Lng: 0},
		},
		EstimatedTime: "45 min",
	}}
}

func TestCoordinatesCalculateImmediately(t *testing.T) {
	g := &fakeGeocoder{}
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	state := c.SetCoordinates(context.Background(), "Av. Siempre Viva 742", 1, 1)

	if !state.IsInDeliveryZone || state.ShippingCost != 12 {
		t.Fatalf("expected in-zone quote of 12, got %+v", state)
	}
	if state.ZoneName != "Centro" || state.EstimatedTime != "45 min" {
		t.Errorf("zone metadata missing: %+v", state)
	}
	if g.callCount() != 0 {
		t.Error("trusted coordinates must not be geocoded")
	}
	if state.IsCalculating {
		t.Error("calculation should have finished")
	}
}

func TestManualAddressWaitsForBlur(t *testing.T) {
	g := &fakeGeocoder{results: map[string]*geocode.LatLng{
		"Av. Siempre Viva 742": {Lat: 1, Lng: 1},
	}}
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	state := c.SetManualAddress("Av. Siempre Viva 742")
	if g.callCount() != 0 {
		t.Fatal("typing alone must not geocode")
	}
	if state.IsInDeliveryZone {
		t.Fatal("no quote before blur")
	}

	state = c.Blur(context.Background())
	if g.callCount() != 1 {
		t.Fatalf("blur should geocode once, got %d calls", g.callCount())
	}
	if !state.IsInDeliveryZone || state.ShippingCost != 12 {
		t.Fatalf("expected quote after blur, got %+v", state)
	}
}

func TestShortAddressIgnoredOnBlur(t *testing.T) {
	g := &fakeGeocoder{}
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	c.SetManualAddress("Av. 12")
	c.Blur(context.Background())

	if g.callCount() != 0 {
		t.Error("addresses under the length floor must not be geocoded")
	}
}

func TestAddressFloorCountsRunesNotBytes(t *testing.T) {
	g := &fakeGeocoder{}
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	// 9 characters but 10 bytes: still below the floor
	c.SetManualAddress("Jr. Ancón")
	c.Blur(context.Background())
	if g.callCount() != 0 {
		t.Error("byte length must not push a short accented address over the floor")
	}

	// 10 characters with accents crosses the floor
	c.SetManualAddress("Jirón Ancó")
	c.Blur(context.Background())
	if g.callCount() != 1 {
		t.Errorf("10-character address should geocode once, got %d calls", g.callCount())
	}
}

func TestMemoizedRecalculation(t *testing.T) {
	g := &fakeGeocoder{results: map[string]*geocode.LatLng{
		"Av. Siempre Viva 742": {Lat: 1, Lng: 1},
	}}
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	c.SetManualAddress("Av. Siempre Viva 742")
	c.Blur(context.Background())
	// same address, no new coordinates: second blur must be a no-op
	c.SetManualAddress("Av. Siempre Viva 742")
	c.Blur(context.Background())

	if g.callCount() != 1 {
		t.Errorf("expected exactly one geocode cycle, got %d", g.callCount())
	}
}

func TestGeocodeFailureIsNonFatal(t *testing.T) {
	g := &fakeGeocoder{} // resolves nothing
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	c.SetManualAddress("Calle Desconocida 9999")
	state := c.Blur(context.Background())

	if state.Err == "" {
		t.Fatal("unresolvable address must surface an error message")
	}
	if state.ShippingCost != 0 || state.IsInDeliveryZone {
		t.Errorf("failed lookup must reset the quote: %+v", state)
	}
	if state.IsCalculating {
		t.Error("calculator must not stay stuck in calculating")
	}
}

func TestZoneSourceFailureIsNonFatal(t *testing.T) {
	c := NewCalculator("s1",
		&fakeGeocoder{},
		&fakeZones{err: errors.New("db down")})

	state := c.SetCoordinates(context.Background(), "Av. Siempre Viva 742", 1, 1)
	if state.Err == "" || state.ShippingCost != 0 {
		t.Errorf("zone source failure must degrade to a zero-cost error state: %+v", state)
	}
}

func TestMissWordingByProvenance(t *testing.T) {
	g := &fakeGeocoder{results: map[string]*geocode.LatLng{
		"Av. Muy Lejana 123456": {Lat: 50, Lng: 50},
	}}
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	// autocompleted coordinates outside every zone
	state := c.SetCoordinates(context.Background(), "Av. Muy Lejana 123456", 50, 50)
	if state.Err != msgOutsideZones {
		t.Errorf("autocompleted miss should use outside-zones wording, got %q", state.Err)
	}

	// same miss, manual provenance
	c2 := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})
	c2.SetManualAddress("Av. Muy Lejana 123456")
	state = c2.Blur(context.Background())
	if state.Err != msgNotInCoverage {
		t.Errorf("manual miss should use coverage wording, got %q", state.Err)
	}
}

func TestClearedAddressResets(t *testing.T) {
	g := &fakeGeocoder{results: map[string]*geocode.LatLng{
		"Av. Siempre Viva 742": {Lat: 1, Lng: 1},
	}}
	c := NewCalculator("s1", g, &fakeZones{zones: squareZones(12)})

	c.SetManualAddress("Av. Siempre Viva 742")
	c.Blur(context.Background())

	state := c.SetManualAddress("")
	if state.ShippingCost != 0 || state.IsInDeliveryZone || state.Err != "" {
		t.Errorf("clearing the address must reset derived state: %+v", state)
	}
}

// blockingGeocoder parks the first lookup until released, simulating a slow
// request that resolves after the user already typed something new.
type blockingGeocoder struct {
	started chan struct{}
	release chan struct{}
	loc     *geocode.LatLng
}

func (b *blockingGeocoder) Geocode(context.Context, string) (*geocode.LatLng, error) {
	close(b.started)
	<-b.release
	return b.loc, nil
}

func TestStaleResultDoesNotOverwriteNewerState(t *testing.T) {
	bg := &blockingGeocoder{
		started: make(chan struct{}),
		release: make(chan struct{}),
		loc:     &geocode.LatLng{Lat: 1, Lng: 1},
	}
	c := NewCalculator("s1", bg, &fakeZones{zones: squareZones(12)})

	c.SetManualAddress("Dirección Antigua 111")
	done := make(chan struct{})
	go func() {
		c.Blur(context.Background())
		close(done)
	}()

	// newer input arrives while the old lookup is still in flight
	<-bg.started
	c.SetManualAddress("Dirección Nueva 222")
	close(bg.release)
	<-done

	state := c.Snapshot()
	if state.LastCheckedAddress == "Dirección Antigua 111" {
		t.Error("stale calculation overwrote newer input")
	}
	if state.IsInDeliveryZone {
		t.Error("stale quote must be discarded")
	}
}
