package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"foodbot/internal/catalog"
	"foodbot/internal/orders"
	"foodbot/internal/testutil"
	"foodbot/models"
	"foodbot/pkg/logger"
	"foodbot/repository"
)

func newTestServer(t *testing.T, name string) (*Server, *catalog.Service, *orders.Service) {
	t.Helper()
	db := testutil.OpenInMemoryDB(t, name)
	log := logger.New(logger.DefaultConfig())

	cat, err := catalog.NewService(context.Background(), repository.NewMenuRepository(db), true, log)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	ord := orders.NewService(repository.NewOrderRepository(db), cat, nil, log)
	return New(cat, ord, t.TempDir(), log), cat, ord
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetProductsShape(t *testing.T) {
	srv, _, _ := newTestServer(t, "httpapi_shape")

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var menu map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &menu); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"snacks", "mainMenu", "drinks", "sauces"} {
		raw, ok := menu[key]
		if !ok {
			t.Errorf("missing category key %q", key)
			continue
		}
		// Empty categories must serialize as [], never null.
		if strings.TrimSpace(string(raw)) == "null" {
			t.Errorf("category %q serialized as null", key)
		}
	}
}

func TestCreateProduct(t *testing.T) {
	srv, _, _ := newTestServer(t, "httpapi_create")
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/products", map[string]any{
		"category": "desserts", "name": "Чизкейк", "price": 250,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown category: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/products", map[string]any{
		"category": "snacks", "name": "", "price": 100,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty name: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/products", map[string]any{
		"category":    "snacks",
		"name":        "Картофель фри",
		"price":       150,
		"description": "Хрустящий",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var p models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID == 0 || p.Name != "Картофель фри" || p.Category != models.CategorySnacks {
		t.Errorf("unexpected product: %+v", p)
	}

	// The new product is visible on the next read.
	rec = doJSON(t, h, http.MethodGet, "/api/products", nil)
	if !strings.Contains(rec.Body.String(), "Картофель фри") {
		t.Errorf("created product missing from catalog: %s", rec.Body.String())
	}
}

func TestDeleteProductIdempotent(t *testing.T) {
	srv, cat, _ := newTestServer(t, "httpapi_delete")
	h := srv.Handler()

	p, err := cat.AddProduct(context.Background(), models.CategoryDrinks, "Кола", 120, "0.5л", "", "")
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	for _, path := range []string{
		"/api/products/drinks/" + itoa(p.ID), // real delete
		"/api/products/drinks/" + itoa(p.ID), // repeat
		"/api/products/drinks/999999",        // absent id
		"/api/products/nosuch/1",             // unknown category
		"/api/products/drinks/abc",           // malformed id
	} {
		rec := doJSON(t, h, http.MethodDelete, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("DELETE %s: status = %d, want 200", path, rec.Code)
		}
		var resp map[string]bool
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || !resp["success"] {
			t.Errorf("DELETE %s: body = %s", path, rec.Body.String())
		}
	}

	if len(cat.Menu().Drinks) != 0 {
		t.Errorf("product still in catalog after delete")
	}
}

func TestSubmitOrder(t *testing.T) {
	srv, cat, ord := newTestServer(t, "httpapi_submit")
	h := srv.Handler()

	p, err := cat.AddProduct(context.Background(), models.CategoryMainMenu, "Гамбургер", 200, "", "", "")
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	item := map[string]any{"id": p.ID, "name": p.Name, "quantity": 1, "finalPrice": 200}

	cases := []struct {
		name string
		body map[string]any
		code int
	}{
		{"missing userId", map[string]any{
			"products": []any{item}, "deliveryType": "pickup", "phone": "+7999",
		}, http.StatusBadRequest},
		{"empty products", map[string]any{
			"userId": 777, "products": []any{}, "deliveryType": "pickup", "phone": "+7999",
		}, http.StatusBadRequest},
		{"delivery without address", map[string]any{
			"userId": 777, "products": []any{item}, "deliveryType": "delivery", "phone": "+7999",
		}, http.StatusBadRequest},
		{"valid pickup", map[string]any{
			"userId": 777, "products": []any{item}, "deliveryType": "pickup", "phone": "+7999",
		}, http.StatusOK},
	}
	for _, tc := range cases {
		rec := doJSON(t, h, http.MethodPost, "/web-data", tc.body)
		if rec.Code != tc.code {
			t.Errorf("%s: status = %d, want %d: %s", tc.name, rec.Code, tc.code, rec.Body.String())
		}
	}

	// The accepted order is durable and addressable by the returned id.
	rec := doJSON(t, h, http.MethodPost, "/web-data", map[string]any{
		"userId": 778, "products": []any{item}, "deliveryType": "pickup", "phone": "+7999",
	})
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	o, err := ord.GetByID(context.Background(), resp["orderId"])
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if o.UserID != 778 || o.Status != models.OrderStatusNew || o.TotalPrice != 200 {
		t.Errorf("unexpected stored order: %+v", o)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t, "httpapi_cors")

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
