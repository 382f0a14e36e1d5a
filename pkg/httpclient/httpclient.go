// Package httpclient provides composable http.RoundTripper decorators for
// outgoing API calls: request IDs, bearer authentication, and request
// logging.
package httpclient

import (
	"context"
	"net/http"
)

// Middleware decorates an http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// roundTripperFunc adapts a function to http.RoundTripper.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Wrap applies middlewares to base so that the first middleware is the
// outermost. A nil base means http.DefaultTransport.
func Wrap(base http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		base = middlewares[i](base)
	}
	return base
}

// TokenSource exposes the currently held auth token.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}
