package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	cfg := &Config{
		BaseURL:        baseURL,
		UserAgent:      "test_agent",
		TimeoutSeconds: 5,
		DefaultZone:    "Asia/Tehran",
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLookupTimeZone(t *testing.T) {
	c := testClient("http://unused")

	cases := []struct {
		name string
		zone string
	}{
		{"تهران", "Asia/Tehran"},
		{"Tehran, Iran", "Asia/Tehran"},
		{"مشهد", "Asia/Tehran"},
		{"London", "Europe/London"},
		{"  new york  ", "America/New_York"},
		{"کابل", "Asia/Kabul"},
		{"Неизвестный город", "Asia/Tehran"}, // дефолт конфига
	}
	for _, c2 := range cases {
		assert.Equal(t, c2.zone, c.lookupTimeZone(c2.name), "name=%q", c2.name)
	}
}

func TestLookupTimeZone_FallbackWithoutConfigDefault(t *testing.T) {
	c := testClient("http://unused")
	c.cfg.DefaultZone = ""
	assert.Equal(t, "Asia/Tehran", c.lookupTimeZone("nowhere"))
}

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test_agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "تهران", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"35.6892","lon":"51.3890","display_name":"Tehran, Iran"}]`))
	}))
	defer srv.Close()

	place, err := testClient(srv.URL).Resolve(context.Background(), " تهران ")
	require.NoError(t, err)
	assert.Equal(t, "تهران", place.Name)
	assert.InDelta(t, 35.6892, place.Latitude, 1e-6)
	assert.InDelta(t, 51.3890, place.Longitude, 1e-6)
	assert.Equal(t, "Asia/Tehran", place.TimeZone)
}

func TestResolve_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Resolve(context.Background(), "آتلانتیس")
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestResolve_ProviderErrorsCollapseToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Resolve(context.Background(), "تهران")
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestResolve_BadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"51.3890"}]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Resolve(context.Background(), "تهران")
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestResolve_EmptyName(t *testing.T) {
	_, err := testClient("http://unused").Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestConfigTimeout_Clamped(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 0}
	assert.Equal(t, "7s", cfg.Timeout().String())

	cfg.TimeoutSeconds = 2
	assert.Equal(t, "5s", cfg.Timeout().String())

	cfg.TimeoutSeconds = 60
	assert.Equal(t, "10s", cfg.Timeout().String())
}
