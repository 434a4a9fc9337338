package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/wishcrate/storefront/internal/credential"
)

func newTestClient(t *testing.T, serverURL string, creds credential.Store, onUnauthorized func()) *Client {
	t.Helper()
	c, err := New(Config{
		BaseURL:        serverURL,
		Credentials:    creds,
		OnUnauthorized: onUnauthorized,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() with empty BaseURL should fail")
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header should be set")
		}
		json.NewEncoder(w).Encode(Cart{})
	}))
	defer server.Close()

	creds := credential.NewMemStore()
	if err := creds.Save("tok-1"); err != nil {
		t.Fatal(err)
	}
	c := newTestClient(t, server.URL, creds, nil)

	if _, err := c.Cart().Get(context.Background()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}

func TestClient_UnauthenticatedWithoutCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, credential.NewMemStore(), nil)
	if _, err := c.Products().Featured(context.Background()); err != nil {
		t.Fatalf("Featured() error = %v", err)
	}
}

func TestClient_UnauthorizedClearsCredential(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": "expired"})
		}))

		creds := credential.NewMemStore()
		creds.Save("stale")

		hookCalls := 0
		c := newTestClient(t, server.URL, creds, func() { hookCalls++ })

		_, err := c.Orders().List(context.Background(), ListOptions{})
		if !IsUnauthorized(err) {
			t.Errorf("status %d: IsUnauthorized(err) = false, err = %v", status, err)
		}
		if got := creds.Load(); got != "" {
			t.Errorf("status %d: credential = %q, want cleared", status, got)
		}
		if hookCalls != 1 {
			t.Errorf("status %d: hook called %d times, want 1", status, hookCalls)
		}

		var ae *APIError
		if !errors.As(err, &ae) || ae.Status != status || ae.Message != "expired" {
			t.Errorf("status %d: error = %+v, want status and message preserved", status, ae)
		}
		server.Close()
	}
}

func TestClient_ConcurrentUnauthorizedIsSafe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	creds := credential.NewMemStore()
	creds.Save("tok")

	var mu sync.Mutex
	hookCalls := 0
	c := newTestClient(t, server.URL, creds, func() {
		mu.Lock()
		hookCalls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Cart().Get(context.Background())
		}()
	}
	wg.Wait()

	if creds.Load() != "" {
		t.Error("credential should be cleared")
	}
	if hookCalls == 0 {
		t.Error("hook should run at least once")
	}
}

func TestClient_RemoteErrorCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "insufficient stock"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, credential.NewMemStore(), nil)
	_, err := c.Cart().Add(context.Background(), 1, 5)

	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if ae.Kind != KindRemote || ae.Status != http.StatusConflict || ae.Message != "insufficient stock" {
		t.Errorf("error = %+v, want remote/409/insufficient stock", ae)
	}
}

func TestClient_TransportError(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1", credential.NewMemStore(), nil)
	_, err := c.Products().Featured(context.Background())

	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if ae.Kind != KindTransport {
		t.Errorf("Kind = %v, want transport", ae.Kind)
	}
	if IsUnauthorized(err) {
		t.Error("transport failure must not read as unauthorized")
	}
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, credential.NewMemStore(), nil)
	_, err := c.Products().Get(context.Background(), 99)
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(err) = false, err = %v", err)
	}
}
