package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// MapsCoGeocoder implements the Geocoder port against a maps.co-style
// forward geocoding endpoint (JSON array, string lat/lon fields).
//
// Every transport or parse failure is reported and collapsed into
// ports.ErrNotFound; the caller only ever distinguishes "resolved" from
// "not resolvable". Results are cached with a long TTL because street
// addresses do not move.
type MapsCoGeocoder struct {
	session *http.Client
	baseURL string
	apiKey  string
	cache   ports.Cache
	ttl     time.Duration
}

type geocodeHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func NewMapsCoGeocoder(baseURL, apiKey string, cache ports.Cache, timeout, ttl time.Duration) *MapsCoGeocoder {
	return &MapsCoGeocoder{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   cache,
		ttl:     ttl,
	}
}

func (g *MapsCoGeocoder) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.Resolve")(&err)

	norm := strings.ToLower(strings.TrimSpace(address))
	if norm == "" {
		return domain.Coordinates{}, ports.ErrNotFound
	}

	key := "geo:" + norm
	if g.cache != nil {
		if cached, cerr := g.cache.Get(ctx, key); cerr == nil {
			var coord domain.Coordinates
			if jerr := json.Unmarshal(cached, &coord); jerr == nil {
				return coord, nil
			}
		}
	}

	req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if rerr != nil {
		log.Error().Err(rerr).Str("address", address).Msg("geocode request build failed")
		return domain.Coordinates{}, ports.ErrNotFound
	}

	q := req.URL.Query()
	q.Set("q", address+", USA")
	q.Set("api_key", g.apiKey)
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, derr := g.session.Do(req)
	if derr != nil {
		log.Error().Err(derr).Str("address", address).Msg("geocode request failed")
		return domain.Coordinates{}, ports.ErrNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("address", address).Msg("geocode unexpected status")
		return domain.Coordinates{}, ports.ErrNotFound
	}

	var hits []geocodeHit
	if jerr := json.NewDecoder(resp.Body).Decode(&hits); jerr != nil {
		log.Error().Err(jerr).Str("address", address).Msg("geocode response decode failed")
		return domain.Coordinates{}, ports.ErrNotFound
	}

	if len(hits) == 0 {
		return domain.Coordinates{}, ports.ErrNotFound
	}

	lat, laterr := strconv.ParseFloat(hits[0].Lat, 64)
	lon, lonerr := strconv.ParseFloat(hits[0].Lon, 64)
	if laterr != nil || lonerr != nil {
		log.Error().Str("address", address).Str("lat", hits[0].Lat).Str("lon", hits[0].Lon).
			Msg("geocode returned unparseable coordinates")
		return domain.Coordinates{}, ports.ErrNotFound
	}

	coord := domain.Coordinates{Lat: lat, Lon: lon}
	log.Info().Str("address", address).Float64("lat", lat).Float64("lon", lon).Msg("geocoded address")

	if g.cache != nil {
		if payload, jerr := json.Marshal(coord); jerr == nil {
			if cerr := g.cache.Set(ctx, key, payload, g.ttl); cerr != nil {
				log.Warn().Err(cerr).Msg("geocode cache write failed")
			}
		}
	}

	return coord, nil
}
