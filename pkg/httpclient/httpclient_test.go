package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token(context.Context) (string, bool) {
	return s.token, s.token != ""
}

func doGet(t *testing.T, rt http.RoundTripper, url string) *http.Response {
	t.Helper()
	client := &http.Client{Transport: rt}
	resp, err := client.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRequestIDAdded(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	doGet(t, Wrap(nil, RequestID()), srv.URL)
	assert.NotEmpty(t, got)
}

func TestRequestIDPreserved(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	rt := Wrap(nil, RequestID())
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "caller-chosen")

	resp, err := (&http.Client{Transport: rt}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "caller-chosen", got)
}

func TestBearerAttachesTokenOnlyWhenHeld(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	doGet(t, Wrap(nil, Bearer(staticTokens{token: "tok-1"})), srv.URL)
	assert.Equal(t, "Bearer tok-1", got)

	doGet(t, Wrap(nil, Bearer(staticTokens{})), srv.URL)
	assert.Empty(t, got)
}

func TestWrapOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	doGet(t, Wrap(nil, tag("outer"), tag("inner"), LogRequests(zap.NewNop())), srv.URL)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
