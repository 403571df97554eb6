package woo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(httpclient.NewHttpClientWithClient(srv.Client()), Config{
		BaseURL:        srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	})
}

func TestClient_ListOrders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wc/v3/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "ck_test", user)
		require.Equal(t, "cs_test", pass)
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Write([]byte(`[
			{"id": 11, "number": "1001", "status": "processing", "total": "49.90", "currency": "EUR"},
			{"id": 12, "number": "1002", "status": "on-hold", "total": "12.00", "currency": "EUR"}
		]`))
	})

	orders, err := client.ListOrders(context.Background(), 1, 100)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1001", orders[0].Number)

	converted, err := orders[0].ToOrder()
	require.NoError(t, err)
	assert.Equal(t, objects.OrderStatusProcessing, converted.Status)
	assert.Equal(t, "49.9", converted.Total.String())

	held, err := orders[1].ToOrder()
	require.NoError(t, err)
	assert.Equal(t, objects.OrderStatusPending, held.Status)
}

func TestClient_ListProducts(t *testing.T) {
	stock := 7

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		w.Write([]byte(`[
			{"id": 5, "sku": "TEE-M", "name": "Tee", "price": "19.99", "stock_quantity": 7, "status": "publish"},
			{"id": 6, "sku": "TEE-L", "name": "Tee L", "price": "", "stock_quantity": null, "status": "draft"}
		]`))
	})

	products, err := client.ListProducts(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.NotNil(t, products[0].StockQuantity)
	assert.Equal(t, stock, *products[0].StockQuantity)

	published, err := products[0].ToProduct()
	require.NoError(t, err)
	assert.True(t, published.Active)
	assert.Equal(t, "19.99", published.Price.String())

	draft, err := products[1].ToProduct()
	require.NoError(t, err)
	assert.False(t, draft.Active)
	assert.Equal(t, 0, draft.Stock)
	assert.True(t, draft.Price.IsZero())
}

func TestClient_ErrorMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"woocommerce_rest_cannot_view"}`))
	})

	_, err := client.ListOrders(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Equal(t, errs.KindExternalService, errs.AsError(err).Kind)
}
