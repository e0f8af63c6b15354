package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// OSRMRouteProvider implements the RouteProvider port against an OSRM
// routing server.
//
// Only the first route candidate is used. The polyline is downsampled before
// caching so every downstream consumer (spatial query, GeoJSON map) works on
// the bounded geometry. Any failure collapses into ports.ErrNotFound after
// being reported.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	cache   ports.Cache
	ttl     time.Duration
}

type osrmResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

func NewOSRMRouteProvider(baseURL string, cache ports.Cache, timeout, ttl time.Duration) *OSRMRouteProvider {
	return &OSRMRouteProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		cache:   cache,
		ttl:     ttl,
	}
}

func coordToken(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (p *OSRMRouteProvider) FetchRoute(ctx context.Context, origin, destination domain.Coordinates) (_ domain.Route, err error) {
	defer obs.Time(ctx, "osrm.FetchRoute")(&err)

	key := ports.CacheKey("route",
		coordToken(origin.Lat), coordToken(origin.Lon),
		coordToken(destination.Lat), coordToken(destination.Lon),
	)
	if p.cache != nil {
		if cached, cerr := p.cache.Get(ctx, key); cerr == nil {
			var r domain.Route
			if jerr := json.Unmarshal(cached, &r); jerr == nil {
				return r, nil
			}
		}
	}

	// OSRM wants lng,lat pairs in the path.
	url := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?overview=full&geometries=geojson",
		p.baseURL,
		coordToken(origin.Lon), coordToken(origin.Lat),
		coordToken(destination.Lon), coordToken(destination.Lat),
	)

	req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if rerr != nil {
		log.Error().Err(rerr).Msg("route request build failed")
		return domain.Route{}, ports.ErrNotFound
	}

	resp, derr := p.session.Do(req)
	if derr != nil {
		log.Error().Err(derr).Msg("route request failed")
		return domain.Route{}, ports.ErrNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("route unexpected status")
		return domain.Route{}, ports.ErrNotFound
	}

	var decoded osrmResponse
	if jerr := json.NewDecoder(resp.Body).Decode(&decoded); jerr != nil {
		log.Error().Err(jerr).Msg("route response decode failed")
		return domain.Route{}, ports.ErrNotFound
	}

	if len(decoded.Routes) == 0 {
		log.Info().
			Float64("origin_lat", origin.Lat).Float64("origin_lon", origin.Lon).
			Float64("dest_lat", destination.Lat).Float64("dest_lon", destination.Lon).
			Msg("routing service returned no routes")
		return domain.Route{}, ports.ErrNotFound
	}

	first := decoded.Routes[0]
	polyline := make([]domain.Coordinates, 0, len(first.Geometry.Coordinates))
	for _, pair := range first.Geometry.Coordinates {
		if len(pair) != 2 {
			log.Error().Int("len", len(pair)).Msg("route geometry has malformed coordinate pair")
			return domain.Route{}, ports.ErrNotFound
		}
		polyline = append(polyline, domain.Coordinates{Lat: pair[1], Lon: pair[0]})
	}

	r := domain.Route{
		Polyline:      domain.DownsamplePolyline(polyline),
		DistanceMiles: domain.MilesFromMeters(first.Distance),
	}

	if p.cache != nil {
		if payload, jerr := json.Marshal(r); jerr == nil {
			if cerr := p.cache.Set(ctx, key, payload, p.ttl); cerr != nil {
				log.Warn().Err(cerr).Msg("route cache write failed")
			}
		}
	}

	return r, nil
}
