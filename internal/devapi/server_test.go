package devapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wishcrate/storefront/client"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := New(Config{Seed: true})
	return s, s.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", client.LoginRequest{
		Email: email, Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}
	var resp client.AuthResponse
	decodeInto(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", client.RegisterRequest{
		FirstName: "New", LastName: "Person",
		Email: "new@example.com", Password: "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp client.AuthResponse
	decodeInto(t, rec, &resp)
	if resp.Role != client.RoleUser {
		t.Fatalf("new accounts get role USER, got %s", resp.Role)
	}

	// Duplicate email is rejected.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", client.RegisterRequest{
		FirstName: "Other", LastName: "Person",
		Email: "NEW@example.com", Password: "secret2",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d, want 409", rec.Code)
	}

	login(t, h, "new@example.com", "secret1")

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", client.LoginRequest{
		Email: "new@example.com", Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status %d, want 401", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("cart without token: status %d, want 401", rec.Code)
	}

	token := login(t, h, "user@wishcrate.dev", "user123")
	rec = doJSON(t, h, http.MethodPost, "/api/products", token, client.Product{Name: "X"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("product create as USER: status %d, want 403", rec.Code)
	}
}

func TestProductListing(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/products?page=0&size=3&sortBy=price&sortDir=ASC", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var page client.Page[client.Product]
	decodeInto(t, rec, &page)
	if len(page.Content) != 3 {
		t.Fatalf("page size: got %d items, want 3", len(page.Content))
	}
	if page.TotalElements != 8 || page.TotalPages != 3 || page.Number != 0 {
		t.Fatalf("envelope: %+v", page)
	}
	for i := 1; i < len(page.Content); i++ {
		if page.Content[i].Price.LessThan(page.Content[i-1].Price) {
			t.Fatal("ascending price sort violated")
		}
	}
}

func TestProductSearchAndFilters(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/api/products/search?keyword=skillet", "", nil)
	var page client.Page[client.Product]
	decodeInto(t, rec, &page)
	if len(page.Content) != 1 || page.Content[0].Name != "Cast Iron Skillet" {
		t.Fatalf("search skillet: %+v", page.Content)
	}

	// Brand matches too.
	rec = doJSON(t, h, http.MethodGet, "/api/products/search?keyword=brewhaus", "", nil)
	decodeInto(t, rec, &page)
	if len(page.Content) != 1 {
		t.Fatalf("brand search: got %d results", len(page.Content))
	}

	rec = doJSON(t, h, http.MethodGet, "/api/products/price-range?minPrice=20&maxPrice=30", "", nil)
	decodeInto(t, rec, &page)
	for _, p := range page.Content {
		eff := p.EffectivePrice()
		if eff.LessThan(price(20)) || eff.GreaterThan(price(30)) {
			t.Fatalf("product %s outside price range: %s", p.Name, eff)
		}
	}
	if len(page.Content) == 0 {
		t.Fatal("price range returned nothing")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/products/featured", "", nil)
	var featured []client.Product
	decodeInto(t, rec, &featured)
	if len(featured) != 4 {
		t.Fatalf("featured: got %d products, want 4", len(featured))
	}
}

func TestCartLifecycle(t *testing.T) {
	_, h := newTestServer(t)
	token := login(t, h, "user@wishcrate.dev", "user123")

	// Locate a product to add.
	rec := doJSON(t, h, http.MethodGet, "/api/products/search?keyword=french+press", "", nil)
	var page client.Page[client.Product]
	decodeInto(t, rec, &page)
	if len(page.Content) == 0 {
		t.Fatal("seed product missing")
	}
	prod := page.Content[0]

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/cart/add?productId=%d&quantity=2", prod.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: status %d, body %s", rec.Code, rec.Body.String())
	}
	var cart client.Cart
	decodeInto(t, rec, &cart)
	if cart.TotalItems != 2 || len(cart.Items) != 1 {
		t.Fatalf("after add: totalItems=%d lines=%d", cart.TotalItems, len(cart.Items))
	}
	wantTotal := prod.EffectivePrice().Mul(price(2))
	if !cart.TotalAmount.Equal(wantTotal) {
		t.Fatalf("total: got %s, want %s", cart.TotalAmount, wantTotal)
	}

	// Adding the same product merges lines.
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/cart/add?productId=%d&quantity=1", prod.ID), token, nil)
	decodeInto(t, rec, &cart)
	if len(cart.Items) != 1 || cart.TotalItems != 3 {
		t.Fatalf("merge: lines=%d totalItems=%d", len(cart.Items), cart.TotalItems)
	}

	itemID := cart.Items[0].ID
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/cart/update/%d?quantity=5", itemID), token, nil)
	decodeInto(t, rec, &cart)
	if cart.TotalItems != 5 {
		t.Fatalf("update: totalItems=%d, want 5", cart.TotalItems)
	}

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", itemID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove: status %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/cart", token, nil)
	decodeInto(t, rec, &cart)
	if cart.TotalItems != 0 || len(cart.Items) != 0 {
		t.Fatalf("after remove: %+v", cart)
	}
}

func TestCartStockGuard(t *testing.T) {
	_, h := newTestServer(t)
	token := login(t, h, "user@wishcrate.dev", "user123")

	// Desk Lamp is seeded with zero stock.
	rec := doJSON(t, h, http.MethodGet, "/api/products/search?keyword=desk+lamp", "", nil)
	var page client.Page[client.Product]
	decodeInto(t, rec, &page)
	if len(page.Content) == 0 {
		t.Fatal("seed product missing")
	}

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/cart/add?productId=%d&quantity=1", page.Content[0].ID), token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("out-of-stock add: status %d, want 409", rec.Code)
	}
	var msg map[string]string
	decodeInto(t, rec, &msg)
	if msg["message"] != "insufficient stock" {
		t.Fatalf("error message: %q", msg["message"])
	}
}

func TestOrderLifecycle(t *testing.T) {
	s, h := newTestServer(t)
	token := login(t, h, "user@wishcrate.dev", "user123")
	adminToken := login(t, h, "admin@wishcrate.dev", "admin123")

	rec := doJSON(t, h, http.MethodGet, "/api/products/search?keyword=keyboard", "", nil)
	var page client.Page[client.Product]
	decodeInto(t, rec, &page)
	prod := page.Content[0]
	stockBefore := prod.StockQuantity

	doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/cart/add?productId=%d&quantity=2", prod.ID), token, nil)

	addr := client.ShippingAddress{
		FullName: "Uma User", PhoneNumber: "555-0100",
		AddressLine1: "1 Main St", City: "Springfield",
		State: "IL", Country: "US", ZipCode: "62704",
	}
	rec = doJSON(t, h, http.MethodPost, "/api/orders/create", token, map[string]any{
		"shippingAddress": addr,
		"paymentMethod":   client.PaymentCreditCard,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create order: status %d, body %s", rec.Code, rec.Body.String())
	}
	var order client.Order
	decodeInto(t, rec, &order)
	if order.Status != client.OrderPending {
		t.Fatalf("new order status: %s", order.Status)
	}
	if order.OrderNumber == "" {
		t.Fatal("order number not assigned")
	}
	wantSubtotal := prod.EffectivePrice().Mul(price(2))
	if !order.Subtotal.Equal(wantSubtotal) {
		t.Fatalf("subtotal: got %s, want %s", order.Subtotal, wantSubtotal)
	}
	if !order.TotalAmount.Equal(order.Subtotal.Add(order.Tax).Add(order.ShippingCost)) {
		t.Fatal("total does not add up")
	}

	// Stock was decremented and the cart cleared.
	s.mu.Lock()
	stockAfter := s.products[prod.ID].StockQuantity
	s.mu.Unlock()
	if stockAfter != stockBefore-2 {
		t.Fatalf("stock: got %d, want %d", stockAfter, stockBefore-2)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/cart", token, nil)
	var cart client.Cart
	decodeInto(t, rec, &cart)
	if cart.TotalItems != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", cart)
	}

	// Admin moves it along; then cancellation is refused.
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/orders/%d/status?status=SHIPPED", order.ID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status update: %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/orders/%d/cancel", order.ID), token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("cancel shipped order: status %d, want 409", rec.Code)
	}
}

func TestCancelRestoresStock(t *testing.T) {
	s, h := newTestServer(t)
	token := login(t, h, "user@wishcrate.dev", "user123")

	rec := doJSON(t, h, http.MethodGet, "/api/products/search?keyword=skillet", "", nil)
	var page client.Page[client.Product]
	decodeInto(t, rec, &page)
	prod := page.Content[0]

	doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/cart/add?productId=%d&quantity=3", prod.ID), token, nil)
	rec = doJSON(t, h, http.MethodPost, "/api/orders/create", token, map[string]any{
		"shippingAddress": client.ShippingAddress{
			AddressLine1: "1 Main St", City: "Springfield",
		},
		"paymentMethod": client.PaymentCOD,
	})
	var order client.Order
	decodeInto(t, rec, &order)

	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/orders/%d/cancel", order.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: status %d", rec.Code)
	}
	decodeInto(t, rec, &order)
	if order.Status != client.OrderCancelled {
		t.Fatalf("status after cancel: %s", order.Status)
	}

	s.mu.Lock()
	stock := s.products[prod.ID].StockQuantity
	s.mu.Unlock()
	if stock != prod.StockQuantity {
		t.Fatalf("stock not restored: got %d, want %d", stock, prod.StockQuantity)
	}
}

func TestAdminProductAndStats(t *testing.T) {
	_, h := newTestServer(t)
	adminToken := login(t, h, "admin@wishcrate.dev", "admin123")

	rec := doJSON(t, h, http.MethodPost, "/api/products", adminToken, client.Product{
		Name: "Gift Card", Price: price(25), StockQuantity: 500, Active: true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create product: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created client.Product
	decodeInto(t, rec, &created)
	if created.ID == 0 {
		t.Fatal("created product has no id")
	}

	created.Price = price(30)
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), adminToken, created)
	var updated client.Product
	decodeInto(t, rec, &updated)
	if !updated.Price.Equal(price(30)) {
		t.Fatalf("update price: %s", updated.Price)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/admin/stats", adminToken, nil)
	var stats client.AdminStats
	decodeInto(t, rec, &stats)
	if stats.TotalProducts != 9 || stats.TotalUsers != 3 || stats.TotalCategories != 3 {
		t.Fatalf("stats: %+v", stats)
	}

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
}

func TestAddressBook(t *testing.T) {
	_, h := newTestServer(t)
	token := login(t, h, "user@wishcrate.dev", "user123")

	rec := doJSON(t, h, http.MethodPost, "/api/addresses", token, client.Address{
		FullName: "Uma User", AddressLine1: "1 Main St",
		City: "Springfield", State: "IL", Country: "US",
		ZipCode: "62704", Type: client.AddressHome,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save address: status %d", rec.Code)
	}
	var saved client.Address
	decodeInto(t, rec, &saved)

	rec = doJSON(t, h, http.MethodGet, "/api/addresses", token, nil)
	var list []client.Address
	decodeInto(t, rec, &list)
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Fatalf("address list: %+v", list)
	}

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/addresses/%d", saved.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete address: status %d", rec.Code)
	}
}
