// Package app wires the storefront client together: local state storage,
// session, API clients, cart store, and checkout orchestrator.
package app

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	sdkapp "github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/dragon98048/EverstMart/internal/checkout"
	"github.com/dragon98048/EverstMart/internal/domain/cart"
	"github.com/dragon98048/EverstMart/internal/geocode"
	"github.com/dragon98048/EverstMart/internal/session"
	"github.com/dragon98048/EverstMart/internal/storage/sqlite"
	"github.com/dragon98048/EverstMart/internal/storeapi"
	"github.com/dragon98048/EverstMart/pkg/httpclient"
)

// Client bundles every wired component of the storefront client.
type Client struct {
	Cart     *cart.Store
	Session  *session.Store
	API      *storeapi.Client
	Geocoder *geocode.Client
	Location geocode.LocationSource
	Checkout *checkout.Orchestrator

	state *sqlite.Store
	lg    *zap.Logger
}

// NewClient creates all dependencies. It is the single wiring point for
// the client; Close must be called when done.
func NewClient(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry, cfg *Config) (*Client, error) {
	state, err := sqlite.Open(ctx, cfg.StatePath)
	if err != nil {
		return nil, errors.Wrap(err, "open state store")
	}

	sessions := session.NewStore(state, lg.Named("session"))
	cartStore := cart.NewStore(state, lg.Named("cart"))

	instrumented := func(extra ...httpclient.Middleware) http.RoundTripper {
		base := otelhttp.NewTransport(nil,
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		)
		middlewares := append([]httpclient.Middleware{
			httpclient.RequestID(),
			httpclient.LogRequests(lg.Named("http")),
		}, extra...)
		return httpclient.Wrap(base, middlewares...)
	}

	apiHTTP := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: instrumented(httpclient.Bearer(sessions)),
	}
	api := storeapi.NewClient(cfg.APIBaseURL, apiHTTP, lg.Named("storeapi"))

	// The geocoder authenticates with its own API key, never the user's
	// bearer token.
	geocoder := geocode.NewClient(geocode.Config{
		BaseURL:  cfg.Geocoding.BaseURL,
		APIKey:   cfg.Geocoding.APIKey,
		Defaults: cfg.Geocoding.Defaults(),
	}, &http.Client{Transport: instrumented()}, lg.Named("geocode"))

	var location geocode.LocationSource = geocode.NoSource{}
	if cfg.Location != "" {
		coord, err := ParseCoordinate(cfg.Location)
		if err != nil {
			_ = state.Close()
			return nil, err
		}
		location = geocode.FixedSource{Coordinate: coord}
	}

	orchestrator := checkout.NewOrchestrator(cartStore, sessions, api, api, lg.Named("checkout"))

	return &Client{
		Cart:     cartStore,
		Session:  sessions,
		API:      api,
		Geocoder: geocoder,
		Location: location,
		Checkout: orchestrator,
		state:    state,
		lg:       lg,
	}, nil
}

// Close releases the local state store.
func (c *Client) Close() error {
	return c.state.Close()
}

// Run executes one CLI command against a freshly wired client.
func Run(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry, cfg *Config, args []string) error {
	client, err := NewClient(ctx, lg, m, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			lg.Warn("Closing state store failed", zap.Error(err))
		}
	}()

	// Navigation-badge analog: log the running totals after every cart
	// mutation in this process.
	unsubscribe := client.Cart.Subscribe(func(e cart.Event) {
		lg.Info("Cart updated",
			zap.Int("items", e.TotalItems),
			zap.String("total", e.TotalPrice.StringFixed(2)),
		)
	})
	defer unsubscribe()

	return dispatch(ctx, client, args)
}
