// Package storeapi is the HTTP client for the storefront REST API:
// catalog, auth, order history, and the two payment paths.
package storeapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"

	"github.com/dragon98048/EverstMart/internal/checkout"
)

// Compile-time checks: the client serves both checkout collaborator roles.
var (
	_ checkout.OrderAPI   = (*Client)(nil)
	_ checkout.PaymentAPI = (*Client)(nil)
)

// Error is a failed API call with the server-provided message, when the
// server sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// Client calls the storefront API. Authentication is handled by the
// transport (pkg/httpclient Bearer middleware), not per call site.
type Client struct {
	base string
	http *http.Client
	lg   *zap.Logger
}

// NewClient creates an API client for the service at baseURL (e.g.
// http://localhost:5000). httpClient may be nil.
func NewClient(baseURL string, httpClient *http.Client, lg *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Client{base: baseURL, http: httpClient, lg: lg}
}

// Products lists the catalog, optionally filtered.
func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]Product, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeProducts(body)
}

// ProductByID fetches a single catalog product.
func (c *Client) ProductByID(ctx context.Context, id string) (*Product, error) {
	body, err := c.get(ctx, "/api/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	p, err := decodeProduct(jx.DecodeBytes(body))
	if err != nil {
		return nil, errors.Wrap(err, "decode product")
	}
	return &p, nil
}

// Login authenticates with the auth service and returns the issued token
// and profile. The caller persists them via the session store.
func (c *Client) Login(ctx context.Context, email, password string) (string, Profile, error) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("email")
	e.Str(email)
	e.FieldStart("password")
	e.Str(password)
	e.ObjEnd()

	body, err := c.post(ctx, "/api/auth/login", e.Bytes())
	if err != nil {
		return "", Profile{}, err
	}
	return decodeLogin(body)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	body, err := c.get(ctx, "/api/auth/profile")
	if err != nil {
		return Profile{}, err
	}
	p, err := decodeProfile(jx.DecodeBytes(body))
	if err != nil {
		return Profile{}, errors.Wrap(err, "decode profile")
	}
	return p, nil
}

// MyOrders returns the authenticated user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]OrderSummary, error) {
	body, err := c.get(ctx, "/api/orders/my-orders")
	if err != nil {
		return nil, err
	}
	return decodeOrderSummaries(body)
}

// PlaceCOD submits a cash-on-delivery order.
func (c *Client) PlaceCOD(ctx context.Context, order checkout.Order) error {
	_, err := c.post(ctx, "/api/payments/cod", encodeOrderEnvelope(order))
	return err
}

// Initiate starts an online payment and returns the gateway form post.
func (c *Client) Initiate(ctx context.Context, order checkout.Order) (*checkout.GatewayPost, error) {
	body, err := c.post(ctx, "/api/payments/payu/initiate", encodeOrderEnvelope(order))
	if err != nil {
		return nil, err
	}
	return decodeGatewayPost(body)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(body),
		}
	}
	return body, nil
}
