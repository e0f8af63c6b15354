package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

func newTestCache(t *testing.T) ports.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func osrmBody(t *testing.T, points int, distanceMeters float64) []byte {
	t.Helper()
	coords := make([][]float64, points)
	for i := range coords {
		coords[i] = []float64{-104.0 - float64(i)*0.01, 39.0 + float64(i)*0.01}
	}
	body := map[string]any{
		"routes": []map[string]any{{
			"distance": distanceMeters,
			"geometry": map[string]any{"coordinates": coords},
		}},
	}
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return b
}

func TestFetchRouteConvertsMetersToMiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/"))
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		w.Write(osrmBody(t, 3, 160934))
	}))
	defer srv.Close()

	p := NewOSRMRouteProvider(srv.URL, newTestCache(t), time.Second, time.Hour)

	r, err := p.FetchRoute(context.Background(),
		domain.Coordinates{Lat: 39, Lon: -104},
		domain.Coordinates{Lat: 40, Lon: -105},
	)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, r.DistanceMiles, 1e-2)
	assert.Len(t, r.Polyline, 3)
	// lng,lat pairs must land as Lat/Lon.
	assert.InDelta(t, 39.0, r.Polyline[0].Lat, 1e-9)
	assert.InDelta(t, -104.0, r.Polyline[0].Lon, 1e-9)
}

func TestFetchRouteDownsamplesLongPolylines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(osrmBody(t, 450, 500000))
	}))
	defer srv.Close()

	p := NewOSRMRouteProvider(srv.URL, newTestCache(t), time.Second, time.Hour)

	r, err := p.FetchRoute(context.Background(),
		domain.Coordinates{Lat: 39, Lon: -104},
		domain.Coordinates{Lat: 40, Lon: -105},
	)
	require.NoError(t, err)
	require.Len(t, r.Polyline, domain.MaxPolylinePoints)
	assert.InDelta(t, 39.0, r.Polyline[0].Lat, 1e-9)
	assert.InDelta(t, 39.0+449*0.01, r.Polyline[len(r.Polyline)-1].Lat, 1e-9)
}

func TestFetchRouteCachesWithinTTL(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(osrmBody(t, 5, 321868))
	}))
	defer srv.Close()

	p := NewOSRMRouteProvider(srv.URL, newTestCache(t), time.Second, time.Hour)
	ctx := context.Background()
	origin := domain.Coordinates{Lat: 39, Lon: -104}
	dest := domain.Coordinates{Lat: 40, Lon: -105}

	first, err := p.FetchRoute(ctx, origin, dest)
	require.NoError(t, err)

	second, err := p.FetchRoute(ctx, origin, dest)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second fetch must be served from cache")
}

func TestFetchRouteNoRoutesIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"routes":[]}`)
	}))
	defer srv.Close()

	p := NewOSRMRouteProvider(srv.URL, newTestCache(t), time.Second, time.Hour)

	_, err := p.FetchRoute(context.Background(),
		domain.Coordinates{Lat: 39, Lon: -104},
		domain.Coordinates{Lat: 40, Lon: -105},
	)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFetchRouteTransportFailureIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewOSRMRouteProvider(srv.URL, newTestCache(t), time.Second, time.Hour)

	_, err := p.FetchRoute(context.Background(),
		domain.Coordinates{Lat: 39, Lon: -104},
		domain.Coordinates{Lat: 40, Lon: -105},
	)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
