package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupuk/storefront/internal/application/address"
	cartapp "github.com/pupuk/storefront/internal/application/cart"
	catalogapp "github.com/pupuk/storefront/internal/application/catalog"
	orderapp "github.com/pupuk/storefront/internal/application/order"
	"github.com/pupuk/storefront/internal/domain/region"
)

func (e *testEnv) selectFullAddress(t *testing.T, sid string) address.View {
	t.Helper()
	var view address.View
	for _, step := range []SelectRegionRequest{
		{Level: "province", ID: "33"},
		{Level: "regency", ID: "3310"},
		{Level: "district", ID: "3310010"},
		{Level: "village", ID: "3310010001"},
	} {
		w := e.do(t, call{method: http.MethodPost, path: "/api/v1/address/select", sessionID: sid, body: step})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		view = address.View{}
		decode(t, w, &view)
	}
	return view
}

func TestStorefront_CatalogBrowsing(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	p := env.seedProduct(t, token, "Urea 50 Kg")

	w := env.do(t, call{method: http.MethodGet, path: "/api/v1/store/products?q=urea"})
	require.Equal(t, http.StatusOK, w.Code)
	var list []catalogapp.ProductResponse
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Rp 50.000", list[0].PriceFormatted)
	assert.Nil(t, list[0].CostPrice)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/store/products/" + p.Slug})
	require.Equal(t, http.StatusOK, w.Code)
	var detail catalogapp.ProductDetailResponse
	decode(t, w, &detail)
	assert.Equal(t, p.ID, detail.Product.ID)
	assert.Empty(t, detail.Related)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/store/products/does-not-exist"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_NOT_FOUND", decode(t, w, nil).Error.Code)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/store/products/Bad_Slug"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/store/categories"})
	var cats []catalogapp.CategoryResponse
	decode(t, w, &cats)
	assert.Len(t, cats, 1)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/regions/regencies/33"})
	var regencies []region.Node
	decode(t, w, &regencies)
	assert.Equal(t, []region.Node{{ID: "3310", Name: "KABUPATEN KLATEN"}}, regencies)
}

func TestStorefront_CartLifecycle(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, env.login(t), "NPK Mutiara")
	sid := newSessionID()

	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/cart/items", sessionID: sid,
		body: AddItemRequest{ProductID: p.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/cart/items", sessionID: sid,
		body: AddItemRequest{ProductID: p.ID, Quantity: 2}})
	var snap cartapp.Snapshot
	decode(t, w, &snap)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 3, snap.TotalItems)
	assert.Equal(t, "Rp 150.000", snap.TotalFormatted)

	// Below one is ignored.
	for _, qty := range []int{0, -1} {
		w = env.do(t, call{method: http.MethodPut, path: "/api/v1/cart/items/" + p.ID.String(), sessionID: sid,
			body: map[string]int{"quantity": qty}})
		require.Equal(t, http.StatusOK, w.Code, "quantity %d: %s", qty, w.Body.String())
		decode(t, w, &snap)
		assert.Equal(t, 3, snap.TotalItems, "quantity %d", qty)
	}

	w = env.do(t, call{method: http.MethodPut, path: "/api/v1/cart/items/" + p.ID.String(), sessionID: sid,
		body: map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code, "quantity is required")

	// The cart is written through to the KV tier under the session's key.
	raw, err := env.kv.Get(t.Context(), sid+":"+cartapp.SlotKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), p.ID.String())

	w = env.do(t, call{method: http.MethodDelete, path: "/api/v1/cart/items/" + p.ID.String(), sessionID: sid})
	decode(t, w, &snap)
	assert.Empty(t, snap.Items)

	w = env.do(t, call{method: http.MethodPut, path: "/api/v1/cart/items/not-a-uuid", sessionID: sid,
		body: map[string]int{"quantity": 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStorefront_CartRejectsInactiveProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/admin/entities/product", token: token,
		body: map[string]any{"name": "Draft", "selling_price": 1000, "is_active": false}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p catalogapp.ProductResponse
	decode(t, w, &p)

	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/cart/items", sessionID: newSessionID(),
		body: AddItemRequest{ProductID: p.ID}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStorefront_AddressCascade(t *testing.T) {
	env := newTestEnv(t)
	sid := newSessionID()

	w := env.do(t, call{method: http.MethodGet, path: "/api/v1/address", sessionID: sid})
	var view address.View
	decode(t, w, &view)
	require.Len(t, view.Levels, 4)
	assert.Equal(t, address.StatusReady, view.Levels[0].Status)
	assert.Equal(t, address.StatusEmpty, view.Levels[1].Status)

	view = env.selectFullAddress(t, sid)
	assert.True(t, view.Complete)
	assert.Equal(t, "PASUNGAN", view.Selection.VillageName)

	// Re-selecting the province clears every level below it.
	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/address/select", sessionID: sid,
		body: SelectRegionRequest{Level: "province", ID: "33"}})
	var reselected address.View
	decode(t, w, &reselected)
	assert.False(t, reselected.Complete)
	assert.Equal(t, "33", reselected.Selection.ProvinceID)
	assert.Empty(t, reselected.Selection.RegencyID)
	assert.Empty(t, reselected.Selection.DistrictID)
	assert.Empty(t, reselected.Selection.VillageID)
	assert.Equal(t, address.StatusReady, reselected.Levels[1].Status)

	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/address/select", sessionID: sid,
		body: SelectRegionRequest{Level: "district", ID: "9999"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ERR_UNKNOWN_REGION", decode(t, w, nil).Error.Code)

	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/address/select", sessionID: sid,
		body: map[string]string{"level": "planet", "id": "1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStorefront_CheckoutRejections(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, env.login(t), "Urea")
	sid := newSessionID()

	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/checkout", sessionID: sid,
		body: CheckoutRequest{ContactRequest: ContactRequest{Name: "  "}}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env1 := decode(t, w, nil)
	assert.Equal(t, "ERR_CONTACT_INCOMPLETE", env1.Error.Code)
	assert.Equal(t, "Lengkapi nama dan nomor HP", env1.Error.Message)
	require.Len(t, env1.Error.Details, 1)
	assert.Equal(t, "contact", env1.Error.Details[0].Field)

	contact := ContactRequest{Name: "Sri", Phone: "0813"}
	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/checkout", sessionID: sid,
		body: CheckoutRequest{ContactRequest: contact}})
	assert.Equal(t, "ERR_ADDRESS_INCOMPLETE", decode(t, w, nil).Error.Code)

	env.selectFullAddress(t, sid)
	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/checkout", sessionID: sid,
		body: CheckoutRequest{ContactRequest: contact}})
	assert.Equal(t, "ERR_CART_EMPTY", decode(t, w, nil).Error.Code)

	// Rejected attempts still remember what was typed.
	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/customer", sessionID: sid})
	var remembered ContactResponse
	decode(t, w, &remembered)
	assert.Equal(t, "Sri", remembered.Name)

	env.do(t, call{method: http.MethodPost, path: "/api/v1/cart/items", sessionID: sid, body: AddItemRequest{ProductID: p.ID}})
	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/checkout", sessionID: sid,
		body: CheckoutRequest{ContactRequest: contact}})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestStorefront_CheckoutToConfirmation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	p := env.seedProduct(t, token, "Urea")
	sid := newSessionID()

	env.do(t, call{method: http.MethodPost, path: "/api/v1/cart/items", sessionID: sid,
		body: AddItemRequest{ProductID: p.ID, Quantity: 2}})
	env.selectFullAddress(t, sid)

	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/checkout", sessionID: sid,
		body: CheckoutRequest{
			ContactRequest: ContactRequest{Name: " Budi ", Phone: "0812", AddressDetail: "RT 01"},
			Notes:          " antar pagi ",
		}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed CheckoutResponse
	decode(t, w, &placed)
	assert.Equal(t, "Budi", placed.Order.CustomerName)
	assert.Equal(t, "antar pagi", placed.Order.Notes)
	assert.Equal(t, "Rp 100.000", placed.Order.TotalFormatted)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "New order from Budi: Urea (2). Please process.", placed.WhatsApp.Message)
	assert.True(t, placed.WhatsApp.AutoRedirect)
	require.Len(t, placed.Toasts, 1)
	assert.Equal(t, "Pesanan berhasil dibuat!", placed.Toasts[0].Message)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/cart", sessionID: sid})
	var snap cartapp.Snapshot
	decode(t, w, &snap)
	assert.Empty(t, snap.Items)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/confirmation", sessionID: sid})
	var pending HandoffResponse
	decode(t, w, &pending)
	assert.True(t, pending.Pending)
	assert.True(t, pending.Handoff.AutoRedirect)
	assert.Equal(t, 2, pending.DelaySeconds)

	w = env.do(t, call{method: http.MethodGet, path: "/order-success", sessionID: sid})
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, `http-equiv="refresh"`)
	assert.Contains(t, page, "https://wa.me/"+testWhatsApp+"?text=")
	assert.Contains(t, page, "Budi")

	// The redirect fires once; a reload only shows the link.
	w = env.do(t, call{method: http.MethodGet, path: "/order-success", sessionID: sid})
	assert.NotContains(t, w.Body.String(), `http-equiv="refresh"`)
	assert.Contains(t, w.Body.String(), "https://wa.me/"+testWhatsApp)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/admin/orders", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	var orders []orderapp.OrderResponse
	listEnv := decode(t, w, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), listEnv.Meta.Total)
	assert.Equal(t, placed.Order.ID, orders[0].ID)
}

func TestStorefront_OrderSuccessWithoutOrder(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, call{method: http.MethodGet, path: "/order-success", sessionID: newSessionID()})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, `http-equiv="refresh"`)
	assert.True(t, strings.Contains(body, "Hello, I would like to confirm my order."))
}
