package httpclient

import "net/http"

// Bearer returns a middleware that attaches the current auth token as an
// Authorization header. Requests go out without the header when no token
// is held; the server decides which endpoints require one.
func Bearer(tokens TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if token, ok := tokens.Token(r.Context()); ok {
				r = r.Clone(r.Context())
				r.Header.Set("Authorization", "Bearer "+token)
			}
			return next.RoundTrip(r)
		})
	}
}
