package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragon98048/EverstMart/internal/domain/address"
)

var testDefaults = address.Defaults{City: "Mumbai", State: "Maharashtra", ZipCode: "400001"}

const reverseResponse = `{
	"status": "OK",
	"results": [
		{
			"formatted_address": "Palm Beach Road, Ulwe, Navi Mumbai, Maharashtra 410206, India",
			"address_components": [
				{"long_name": "Palm Beach Road", "short_name": "Palm Beach Rd", "types": ["route"]},
				{"long_name": "Sector 19", "short_name": "Sector 19", "types": ["sublocality_level_2", "political"]},
				{"long_name": "Ulwe", "short_name": "Ulwe", "types": ["sublocality_level_1", "political"]},
				{"long_name": "Navi Mumbai", "short_name": "Navi Mumbai", "types": ["locality", "political"]},
				{"long_name": "Maharashtra", "short_name": "MH", "types": ["administrative_area_level_1", "political"]},
				{"long_name": "410206", "short_name": "410206", "types": ["postal_code"]}
			]
		},
		{
			"formatted_address": "ignored second result",
			"address_components": []
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		Defaults: testDefaults,
	}, srv.Client(), nil)
}

func TestReverseResolvesFirstResult(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		_, _ = w.Write([]byte(reverseResponse))
	})

	fields, err := client.Reverse(context.Background(), address.Coordinate{Latitude: 19.076, Longitude: 72.8777})
	require.NoError(t, err)

	assert.Equal(t, "Palm Beach Road, Sector 19", fields.Street)
	assert.Equal(t, "Ulwe", fields.Area)
	assert.Equal(t, "Navi Mumbai", fields.City)
	assert.Equal(t, "410206", fields.ZipCode)

	assert.Equal(t, []string{"19.076,72.8777"}, gotQuery["latlng"])
	assert.Equal(t, []string{"test-key"}, gotQuery["key"])
	assert.Equal(t, []string{"premise|street_address|sublocality"}, gotQuery["result_type"])
}

func TestSearchSendsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Sector 19 Ulwe", r.URL.Query().Get("address"))
		_, _ = w.Write([]byte(reverseResponse))
	})

	_, err := client.Search(context.Background(), "Sector 19 Ulwe")
	require.NoError(t, err)
}

func TestEmptyResultsIsTypedError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := client.Reverse(context.Background(), address.Coordinate{})
	require.ErrorIs(t, err, ErrNoResults)
}

func TestServerErrorIsWrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Reverse(context.Background(), address.Coordinate{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)
}

func TestMissingAPIKeyNeverSendsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Defaults: testDefaults}, srv.Client(), nil)
	_, err := client.Reverse(context.Background(), address.Coordinate{})

	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called)
}
