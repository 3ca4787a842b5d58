package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/tigreau/nto-music/pkg/apierror"
)

func TestListProducts_Filters(t *testing.T) {
	var gotQuery url.Values
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"id":1,"name":"Jazz Bass","slug":"jazz-bass","price":899.5,"categoryName":"Bass","condition":"GOOD"}],"totalElements":1,"totalPages":1,"number":0,"size":20}`))
	})
	pointClientAt(t, mux)

	page, err := ListProducts(context.Background(), ProductFilters{
		Query:    "bass",
		Category: "bass-guitars",
		MaxPrice: 1000,
		Sort:     "price_asc",
	})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}

	if len(page.Content) != 1 || page.Content[0].Name != "Jazz Bass" {
		t.Errorf("unexpected page: %+v", page)
	}
	if gotQuery.Get("q") != "bass" || gotQuery.Get("category") != "bass-guitars" {
		t.Errorf("filter params missing: %v", gotQuery)
	}
	if gotQuery.Get("maxPrice") != "1000" || gotQuery.Get("sort") != "price_asc" {
		t.Errorf("filter params missing: %v", gotQuery)
	}
	if gotQuery.Get("minPrice") != "" {
		t.Error("zero-valued filters should be omitted")
	}
	if gotQuery.Get("page") != "0" || gotQuery.Get("size") != "20" {
		t.Errorf("paging defaults missing: %v", gotQuery)
	}
}

func TestGetProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"name":"TB-303","slug":"tb-303","price":3200,"categoryName":"Synths","condition":"EXCELLENT","description":"Acid icon","quantityAvailable":1,"images":[{"id":1,"url":"/img/303.jpg","altText":"front","isPrimary":true,"displayOrder":0}]}`))
	})
	pointClientAt(t, mux)

	product, err := GetProduct(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}

	if product.Name != "TB-303" || product.QuantityAvailable != 1 {
		t.Errorf("unexpected product: %+v", product)
	}
	if len(product.Images) != 1 || !product.Images[0].IsPrimary {
		t.Errorf("images not mapped: %+v", product.Images)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"RESOURCE_NOT_FOUND"}`))
	})
	pointClientAt(t, mux)

	_, err := GetProduct(context.Background(), 404)
	if !apierror.IsNotFound(err) {
		t.Errorf("expected RESOURCE_NOT_FOUND, got %v", err)
	}
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/carts/my/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("quantity") != "3" {
			t.Errorf("quantity param missing: %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"INSUFFICIENT_STOCK","message":"Only 1 left in stock"}`))
	})
	pointClientAt(t, mux)

	err := AddToCart(context.Background(), 5, 3)
	if apierror.KindOf(err) != apierror.KindInsufficientStock {
		t.Errorf("expected INSUFFICIENT_STOCK, got %v", err)
	}
}

func TestSubmitCheckout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders/checkout", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"orderId":1001,"totalAmount":899.5,"paymentStatus":"PAID","transactionId":"txn-42"}`))
	})
	pointClientAt(t, mux)

	result, err := SubmitCheckout(context.Background(), CheckoutRequest{
		PaymentMethod: "CARD",
		Street:        "Main St",
		Number:        "1",
		PostalCode:    "1000",
		City:          "Brussels",
		Country:       "BE",
	})
	if err != nil {
		t.Fatalf("SubmitCheckout failed: %v", err)
	}
	if result.OrderID != 1001 || result.PaymentStatus != "PAID" {
		t.Errorf("unexpected checkout result: %+v", result)
	}
}

func TestSubmitCheckout_CartEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders/checkout", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"CART_EMPTY"}`))
	})
	pointClientAt(t, mux)

	_, err := SubmitCheckout(context.Background(), CheckoutRequest{PaymentMethod: "CARD"})
	if apierror.KindOf(err) != apierror.KindCartEmpty {
		t.Errorf("expected CART_EMPTY, got %v", err)
	}
}
