package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/polished/internal/swatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, api *API) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewMux(api))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, params url.Values) (*http.Response, map[string]any) {
	t.Helper()
	u := srv.URL + path
	if params != nil {
		u += "?" + params.Encode()
	}
	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestAPI_Operations(t *testing.T) {
	api, err := NewAPI(APIConfig{}, nil)
	require.NoError(t, err)
	srv := newTestServer(t, api)

	tests := []struct {
		path   string
		params url.Values
		want   string
	}{
		{"/api/v1/parse", url.Values{"color": {"rgb(255, 0, 0)"}}, "#ff0000"},
		{"/api/v1/hsl", url.Values{"color": {"#ff0000"}}, "hsl(0,100%,50%)"},
		{"/api/v1/adjust-hue", url.Values{"degree": {"180"}, "color": {"#448"}}, "#888844"},
		{"/api/v1/saturate", url.Values{"amount": {"0.2"}, "color": {"#CCCD64"}}, "#e0e250"},
		{"/api/v1/tint", url.Values{"percentage": {"0.25"}, "color": {"#00f"}}, "#bfbfff"},
		{"/api/v1/shade", url.Values{"percentage": {"0.5"}, "color": {"white"}}, "#808080"},
		{"/api/v1/lighten", url.Values{"amount": {"0.5"}, "color": {"black"}}, "#808080"},
		{"/api/v1/mix", url.Values{"weight": {"0.5"}, "color1": {"#f00"}, "color2": {"#00f"}}, "#800080"},
		{"/api/v1/eval", url.Values{"expr": {"tint 0.25 blue"}}, "#bfbfff"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path, tt.params)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.want, body["color"])
		})
	}
}

func TestAPI_ParseIncludesChannels(t *testing.T) {
	api, err := NewAPI(APIConfig{}, nil)
	require.NoError(t, err)
	srv := newTestServer(t, api)

	_, body := get(t, srv, "/api/v1/parse", url.Values{"color": {"rgba(1, 2, 3, 0.5)"}})
	rgb, ok := body["rgb"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, rgb["red"])
	assert.EqualValues(t, 0.5, rgb["alpha"])
}

func TestAPI_Errors(t *testing.T) {
	api, err := NewAPI(APIConfig{}, nil)
	require.NoError(t, err)
	srv := newTestServer(t, api)

	tests := []struct {
		name   string
		path   string
		params url.Values
		status int
	}{
		{"bad color", "/api/v1/parse", url.Values{"color": {"nope"}}, http.StatusBadRequest},
		{"missing color", "/api/v1/tint", url.Values{"percentage": {"0.5"}}, http.StatusBadRequest},
		{"bad amount", "/api/v1/saturate", url.Values{"amount": {"lots"}, "color": {"red"}}, http.StatusBadRequest},
		{"bad expression", "/api/v1/eval", url.Values{"expr": {"frobnicate red"}}, http.StatusBadRequest},
		{"no swatch book", "/api/v1/swatches", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv, tt.path, tt.params)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}

	assert.EqualValues(t, len(tests), api.Status().TotalFailed)
}

func TestAPI_Swatches(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "book.db")
	w, err := swatch.New(dbPath, swatch.Metadata{Name: "test"})
	require.NoError(t, err)
	_, err = w.Put("Brand", "tomato")
	require.NoError(t, err)
	_, err = w.Put("overlay", "rgba(0,0,0,0.5)")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	api, err := NewAPI(APIConfig{SwatchDBPath: dbPath}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { api.Close() })
	srv := newTestServer(t, api)

	resp, body := get(t, srv, "/api/v1/swatches/brand", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "brand", body["name"])
	assert.Equal(t, "tomato", body["source"])

	resp, body = get(t, srv, "/api/v1/swatches/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "swatch not found")

	lresp, err := http.Get(srv.URL + "/api/v1/swatches")
	require.NoError(t, err)
	defer lresp.Body.Close()
	var list []swatch.Swatch
	require.NoError(t, json.NewDecoder(lresp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "brand", list[0].Name)
	assert.Equal(t, "#ff6347", list[0].Canonical())
	assert.Equal(t, "rgba(0,0,0,0.5)", list[1].Canonical())
}

func TestMux_HealthAndCORS(t *testing.T) {
	api, err := NewAPI(APIConfig{}, nil)
	require.NoError(t, err)
	srv := newTestServer(t, api)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/parse", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
}

type failingSource struct{}

func (failingSource) Get(string) (swatch.Swatch, error) { return swatch.Swatch{}, errors.New("disk on fire") }
func (failingSource) List() ([]swatch.Swatch, error)    { return nil, errors.New("disk on fire") }

func TestAPI_SwatchSourceFailure(t *testing.T) {
	api, err := NewAPI(APIConfig{}, nil)
	require.NoError(t, err)
	srv := newTestServer(t, api.WithSwatches(failingSource{}))

	resp, body := get(t, srv, "/api/v1/swatches/brand", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "disk on fire", body["error"])
	assert.True(t, api.Status().Swatches)
}
