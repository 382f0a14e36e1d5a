// Package geocode resolves geographic coordinates and free-text place
// queries into structured address fields using a remote geocoding service.
//
// Resolution is read-only: results are returned to the caller, which merges
// them into its own form state. A failed or empty resolution is a typed,
// non-fatal condition the caller handles by falling back to manual entry.
package geocode

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"

	"github.com/dragon98048/EverstMart/internal/domain/address"
)

var (
	// ErrNoResults indicates the geocoder returned an empty result set for
	// the input. The caller should prompt for manual address entry.
	ErrNoResults = errors.New("geocoder returned no results")

	// ErrMissingAPIKey indicates the client was configured without an API
	// key. Requests are not sent unauthenticated.
	ErrMissingAPIKey = errors.New("geocoding API key is not configured")
)

// reverseResultTypes narrows reverse lookups to results detailed enough for
// delivery addresses.
const reverseResultTypes = "premise|street_address|sublocality"

// Config configures a geocoding Client.
type Config struct {
	// BaseURL is the geocoding service root, e.g. https://maps.googleapis.com.
	BaseURL string
	// APIKey authenticates requests. An empty key disables the client.
	APIKey string
	// Defaults fill city/state/zip when the geocoder resolves none.
	Defaults address.Defaults
}

// Client calls the geocoding HTTP API and applies the address extraction
// policy to the first result.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	defaults address.Defaults
	lg       *zap.Logger
}

// NewClient creates a geocoding client. httpClient may be nil, in which
// case http.DefaultClient is used.
func NewClient(cfg Config, httpClient *http.Client, lg *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Client{
		http:     httpClient,
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		defaults: cfg.Defaults,
		lg:       lg,
	}
}

// Reverse resolves a coordinate into address fields.
func (c *Client) Reverse(ctx context.Context, coord address.Coordinate) (address.Fields, error) {
	latlng := strconv.FormatFloat(coord.Latitude, 'f', -1, 64) +
		"," + strconv.FormatFloat(coord.Longitude, 'f', -1, 64)

	q := url.Values{}
	q.Set("latlng", latlng)
	q.Set("result_type", reverseResultTypes)
	return c.resolve(ctx, q)
}

// Search resolves a free-text place query into address fields.
func (c *Client) Search(ctx context.Context, query string) (address.Fields, error) {
	q := url.Values{}
	q.Set("address", query)
	return c.resolve(ctx, q)
}

func (c *Client) resolve(ctx context.Context, q url.Values) (address.Fields, error) {
	if c.apiKey == "" {
		return address.Fields{}, ErrMissingAPIKey
	}
	q.Set("key", c.apiKey)

	reqURL := c.baseURL + "/maps/api/geocode/json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return address.Fields{}, errors.Wrap(err, "build geocode request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return address.Fields{}, errors.Wrap(err, "geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return address.Fields{}, errors.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return address.Fields{}, errors.Wrap(err, "read geocode response")
	}

	components, formatted, found, err := decodeFirstResult(body)
	if err != nil {
		return address.Fields{}, errors.Wrap(err, "decode geocode response")
	}
	if !found {
		return address.Fields{}, ErrNoResults
	}

	fields := address.Extract(components, formatted, c.defaults)
	c.lg.Debug("Resolved address",
		zap.String("street", fields.Street),
		zap.String("city", fields.City),
	)
	return fields, nil
}

// decodeFirstResult extracts the typed components and formatted address of
// the first geocoder result. Remaining results are skipped, matching the
// first-result policy of the checkout flow.
func decodeFirstResult(body []byte) (components []address.Component, formatted string, found bool, err error) {
	d := jx.DecodeBytes(body)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		if key != "results" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			if found {
				return d.Skip()
			}
			found = true
			return d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "formatted_address":
					var err error
					formatted, err = d.Str()
					return err
				case "address_components":
					return d.Arr(func(d *jx.Decoder) error {
						var c address.Component
						if err := d.Obj(func(d *jx.Decoder, key string) error {
							switch key {
							case "long_name":
								var err error
								c.LongName, err = d.Str()
								return err
							case "types":
								return d.Arr(func(d *jx.Decoder) error {
									t, err := d.Str()
									if err != nil {
										return err
									}
									c.Types = append(c.Types, t)
									return nil
								})
							default:
								return d.Skip()
							}
						}); err != nil {
							return err
						}
						components = append(components, c)
						return nil
					})
				default:
					return d.Skip()
				}
			})
		})
	})
	return components, formatted, found, err
}
