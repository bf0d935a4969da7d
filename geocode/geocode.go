package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// LatLng is a resolved coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Client resolves free-text addresses against a Nominatim-compatible
// geocoding service. One request per call, no retry, no backoff.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New() *Client {
	base := os.Getenv("GEOCODER_URL")
	if base == "" {
		base = "https://nominatim.openstreetmap.org/search"
	}
	return &Client{
		baseURL: base,
		apiKey:  os.Getenv("GEOCODER_KEY"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Geocode resolves an address to coordinates. An unresolvable address (non-OK
// status or empty result) returns (nil, nil): callers must treat that as
// "could not resolve", not a fatal error. Only transport failures return err.
func (c *Client) Geocode(ctx context.Context, address string) (*LatLng, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "tienda-storefront/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err1 := strconv.ParseFloat(results[0].Lat, 64)
	lng, err2 := strconv.ParseFloat(results[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	return &LatLng{Lat: lat, Lng: lng}, nil
}
