package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/ports"
)

func newTestCache(t *testing.T) ports.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestResolveParsesStringCoordinates(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Denver, CO, USA", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`[{"lat":"39.7392","lon":"-104.9903"}]`))
	}))
	defer srv.Close()

	g := NewMapsCoGeocoder(srv.URL, "test-key", newTestCache(t), time.Second, time.Hour)

	coord, err := g.Resolve(context.Background(), "Denver, CO")
	require.NoError(t, err)
	assert.InDelta(t, 39.7392, coord.Lat, 1e-9)
	assert.InDelta(t, -104.9903, coord.Lon, 1e-9)
	assert.Equal(t, 1, calls)
}

func TestResolveCachesWithinTTL(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"lat":"35.1","lon":"-101.8"}]`))
	}))
	defer srv.Close()

	g := NewMapsCoGeocoder(srv.URL, "k", newTestCache(t), time.Second, time.Hour)
	ctx := context.Background()

	first, err := g.Resolve(ctx, "Amarillo, TX")
	require.NoError(t, err)

	// Different surface form, same normalized cache key.
	second, err := g.Resolve(ctx, "  AMARILLO, tx ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second lookup must be served from cache")
}

func TestResolveEmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewMapsCoGeocoder(srv.URL, "k", newTestCache(t), time.Second, time.Hour)

	_, err := g.Resolve(context.Background(), "Nowhere At All")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestResolveFailuresCollapseToNotFound(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"an array"}`))
		},
		"unparseable coords": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat":"abc","lon":"def"}]`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			g := NewMapsCoGeocoder(srv.URL, "k", newTestCache(t), time.Second, time.Hour)

			_, err := g.Resolve(context.Background(), "Denver, CO")
			assert.ErrorIs(t, err, ports.ErrNotFound)
		})
	}
}

func TestResolveBlankAddressIsNotFound(t *testing.T) {
	g := NewMapsCoGeocoder("http://unused", "k", nil, time.Second, time.Hour)

	_, err := g.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
