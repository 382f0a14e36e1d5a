package storeapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragon98048/EverstMart/internal/checkout"
	"github.com/dragon98048/EverstMart/internal/domain/address"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client(), nil)
}

func testOrder() checkout.Order {
	return checkout.Order{
		Items: []checkout.OrderLine{
			{ProductRef: "p1", Name: "Milk", Quantity: 2, UnitPrice: decimal.RequireFromString("32.50")},
		},
		ShippingAddress: address.ShippingAddress{
			Name:   "Asha",
			Phone:  "9876543210",
			Street: "A-101, Maple Apartments",
			City:   "Navi Mumbai",
			State:  "Maharashtra", ZipCode: "410206",
			Location: &address.Coordinate{Latitude: 19.076, Longitude: 72.8777},
		},
		TotalAmount:   decimal.RequireFromString("65.00"),
		PaymentMethod: checkout.PaymentMethodCOD,
	}
}

func TestProducts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "dairy", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`[
			{"_id":"p1","name":"Milk","price":32.5,"category":"dairy","image":"/uploads/milk.jpg","unit":"ml","unitQuantity":500},
			{"_id":"p2","name":"Paneer","price":89,"category":"dairy","image":"","unit":"g","unitQuantity":"200"}
		]`))
	}))

	products, err := client.Products(context.Background(), ProductFilter{Category: "dairy"})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "p1", products[0].ID)
	assert.True(t, decimal.RequireFromString("32.5").Equal(products[0].Price))
	// unitQuantity arrives as number or string; both normalize.
	assert.Equal(t, "500", products[0].UnitQuantity)
	assert.Equal(t, "200", products[1].UnitQuantity)

	cp := products[0].CartProduct()
	assert.Equal(t, "500 ml", cp.UnitLabel)
	assert.Equal(t, "Milk", cp.Name)
}

func TestPlaceCODSendsEnvelope(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/cod", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, client.PlaceCOD(context.Background(), testOrder()))

	orderData, ok := got["orderData"].(map[string]any)
	require.True(t, ok, "payload must be wrapped in orderData")
	assert.Equal(t, "COD", orderData["paymentMethod"])
	assert.Equal(t, 65.0, orderData["totalAmount"])

	items := orderData["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "p1", first["product"])
	assert.Equal(t, 2.0, first["quantity"])
	assert.Equal(t, 32.5, first["price"])

	addr := orderData["shippingAddress"].(map[string]any)
	assert.Equal(t, "A-101, Maple Apartments", addr["street"])
	loc := addr["location"].(map[string]any)
	assert.Equal(t, 19.076, loc["latitude"])
}

func TestOnlineOrderOmitsPaymentMethod(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/payu/initiate", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{
			"success": true,
			"payuUrl": "https://secure.payu.in/_payment",
			"payuData": {"txnid": "t-42", "amount": 65, "hash": "abc"}
		}`))
	}))

	order := testOrder()
	order.PaymentMethod = ""
	post, err := client.Initiate(context.Background(), order)
	require.NoError(t, err)

	orderData := got["orderData"].(map[string]any)
	_, present := orderData["paymentMethod"]
	assert.False(t, present, "online orders carry no payment method marker")

	assert.Equal(t, "https://secure.payu.in/_payment", post.URL)
	assert.Equal(t, "t-42", post.Params["txnid"])
	assert.Equal(t, "65", post.Params["amount"])
	assert.Equal(t, "abc", post.Params["hash"])
}

func TestInitiateRejectedWithoutSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	}))

	_, err := client.Initiate(context.Background(), testOrder())
	require.Error(t, err)
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "insufficient stock for Milk"}`))
	}))

	err := client.PlaceCOD(context.Background(), testOrder())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "insufficient stock for Milk", apiErr.Message)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"token": "tok-123",
			"user": {"_id": "u1", "name": "Asha", "email": "asha@example.com", "phone": "9876543210"}
		}`))
	}))

	token, profile, err := client.Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, Profile{ID: "u1", Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}, profile)
}

func TestMyOrders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/my-orders", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"_id":"o1","totalAmount":110,"items":[{},{}],"orderStatus":"pending","updatedAt":"2026-08-27T10:30:00.000Z"}
		]`))
	}))

	orders, err := client.MyOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, 2, orders[0].ItemCount)
	assert.Equal(t, "pending", orders[0].Status)
	assert.Equal(t, 2026, orders[0].UpdatedAt.Year())
}
