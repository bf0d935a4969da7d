package shipping

import (
	"context"
	"log"
	"sync"
	"unicode/utf8"

	"tienda/geo"
	"tienda/geocode"
	"tienda/models"
)

// Geocoder resolves a free-text address to coordinates. (nil, nil) means the
// address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocode.LatLng, error)
}

// ZoneSource loads a store's delivery zones.
type ZoneSource interface {
	ZonesFor(ctx context.Context, storeID string) ([]models.DeliveryZone, error)
}

// Manually typed addresses shorter than this are ignored on blur; partial
// input is not worth a geocoding round trip.
const minManualAddressLen = 10

// User-facing outcomes. The wording for a zone miss depends on where the
// address came from: trusted coordinates vs free-typed text.
const (
	msgAddressNotFound = "We could not find that address. Please check it and try again."
	msgOutsideZones    = "This address is outside our delivery zones. Shipping will be coordinated with the store."
	msgNotInCoverage   = "We could not locate that address within our coverage area. Shipping will be coordinated with the store."
	msgCalcFailed      = "Shipping could not be calculated right now. It will be coordinated with the store."
)

// State is the calculator snapshot exposed to the storefront.
type State struct {
	IsCalculating      bool    `json:"isCalculating"`
	ShippingCost       float64 `json:"shippingCost"`
	IsInDeliveryZone   bool    `json:"isInDeliveryZone"`
	ZoneName           string  `json:"zoneName,omitempty"`
	EstimatedTime      string  `json:"estimatedTime,omitempty"`
	Err                string  `json:"error,omitempty"`
	LastCheckedAddress string  `json:"lastCheckedAddress,omitempty"`
}

// Calculator turns an evolving address/coordinate input into a shipping
// quote for one visitor session. Two input paths drive it:
//
//   - SetCoordinates: the visitor picked an autocomplete suggestion, used
//     geolocation, or dragged a map pin. Coordinates are trusted and the
//     quote is recalculated immediately.
//   - SetManualAddress + Blur: free-typed text. Nothing happens until focus
//     leaves the field, and only when the address looks complete.
//
// Every input bumps a sequence token; an in-flight calculation only applies
// its result if its token is still current, so a stale geocode can never
// overwrite newer state.
type Calculator struct {
	storeID string
	geo     Geocoder
	zones   ZoneSource

	mu            sync.Mutex
	state         State
	address       string
	coords        *geocode.LatLng
	autocompleted bool
	seq           uint64
}

func NewCalculator(storeID string, g Geocoder, z ZoneSource) *Calculator {
	return &Calculator{storeID: storeID, geo: g, zones: z}
}

// Snapshot returns a copy of the current state.
func (c *Calculator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetCoordinates records a trusted coordinate input and recalculates
// immediately.
func (c *Calculator) SetCoordinates(ctx context.Context, address string, lat, lng float64) State {
	c.mu.Lock()
	c.address = address
	c.coords = &geocode.LatLng{Lat: lat, Lng: lng}
	c.autocompleted = true
	c.seq++
	token := c.seq
	c.mu.Unlock()

	c.calculate(ctx, token)
	return c.Snapshot()
}

// SetManualAddress records free-typed input. Calculation is deferred to
// Blur. An empty address resets the calculator.
func (c *Calculator) SetManualAddress(address string) State {
	c.mu.Lock()
	c.address = address
	c.coords = nil
	c.autocompleted = false
	c.seq++ // invalidate anything in flight
	c.state.IsCalculating = false
	if address == "" {
		c.state = State{}
	}
	c.mu.Unlock()
	return c.Snapshot()
}

// Blur fires the deferred calculation for a manually typed address.
func (c *Calculator) Blur(ctx context.Context) State {
	c.mu.Lock()
	// rune count, not bytes: accented addresses must not pass the floor early
	if c.autocompleted || utf8.RuneCountInString(c.address) < minManualAddressLen {
		c.mu.Unlock()
		return c.Snapshot()
	}
	c.seq++
	token := c.seq
	c.mu.Unlock()

	c.calculate(ctx, token)
	return c.Snapshot()
}

// Reset clears all input and derived state.
func (c *Calculator) Reset() {
	c.mu.Lock()
	c.address = ""
	c.coords = nil
	c.autocompleted = false
	c.seq++
	c.state = State{}
	c.mu.Unlock()
}

// calculate runs one quote cycle. It holds the lock only around state
// transitions; geocoding and zone loading run unlocked, and the result is
// discarded if newer input arrived meanwhile.
func (c *Calculator) calculate(ctx context.Context, token uint64) {
	c.mu.Lock()
	address := c.address
	coords := c.coords
	autocompleted := c.autocompleted

	if address == "" && coords == nil {
		c.state = State{}
		c.mu.Unlock()
		return
	}
	// memoization: same address, no fresh coordinates, nothing to do
	if coords == nil && address != "" && address == c.state.LastCheckedAddress {
		c.mu.Unlock()
		return
	}
	c.state.IsCalculating = true
	c.state.Err = ""
	c.mu.Unlock()

	if coords == nil {
		resolved, err := c.geo.Geocode(ctx, address)
		if err != nil {
			log.Println("geocode error:", err)
		}
		if resolved == nil {
			c.apply(token, func(s *State) {
				*s = State{Err: msgAddressNotFound, LastCheckedAddress: address}
			})
			return
		}
		coords = resolved
	}

	zones, err := c.zones.ZonesFor(ctx, c.storeID)
	if err != nil {
		log.Println("zone load error:", err)
		c.apply(token, func(s *State) {
			*s = State{Err: msgCalcFailed, LastCheckedAddress: address}
		})
		return
	}

	res := geo.MatchZone(coords.Lat, coords.Lng, zones)
	c.apply(token, func(s *State) {
		*s = State{
			ShippingCost:       res.ShippingCost,
			IsInDeliveryZone:   res.InDeliveryZone,
			LastCheckedAddress: address,
		}
		if res.InDeliveryZone {
			s.ZoneName = res.Zone.Name
			s.EstimatedTime = res.EstimatedTime
			return
		}
		if autocompleted {
			s.Err = msgOutsideZones
		} else {
			s.Err = msgNotInCoverage
		}
	})
}

// apply commits a state transition unless newer input superseded this
// calculation. Reports whether the transition was applied.
func (c *Calculator) apply(token uint64, f func(*State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return false
	}
	f(&c.state)
	c.state.IsCalculating = false
	// fresh coordinates are consumed by exactly one calculation
	c.coords = nil
	return true
}
