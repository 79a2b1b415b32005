package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayPalTokenCaching(t *testing.T) {
	var tokenRequests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			atomic.AddInt32(&tokenRequests, 1)
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-id", user)
			assert.Equal(t, "client-secret", pass)
			w.Write([]byte(`{"access_token": "tok-1", "expires_in": 3600}`))
		case "/v2/checkout/orders":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "ORDER-1", "status": "CREATED"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewPayPalClient(server.URL, "client-id", "client-secret")

	for i := 0; i < 3; i++ {
		order, err := client.CreateOrder(context.Background(), 1499, "CAD", "Full analysis")
		assert.NoError(t, err)
		assert.Equal(t, "ORDER-1", order.ID)
	}

	// The OAuth token is cached until shortly before expiry
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenRequests))
}

func TestPayPalTokenConcurrentAccess(t *testing.T) {
	var tokenRequests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			atomic.AddInt32(&tokenRequests, 1)
			w.Write([]byte(`{"access_token": "tok-1", "expires_in": 3600}`))
		case "/v2/checkout/orders":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "ORDER-1", "status": "CREATED"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	// One client shared by many request goroutines, as wired at startup
	client := NewPayPalClient(server.URL, "client-id", "client-secret")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := client.CreateOrder(context.Background(), 599, "CAD", "Basic analysis")
			assert.NoError(t, err)
			assert.Equal(t, "ORDER-1", order.ID)
		}()
	}
	wg.Wait()

	// The exchange happens once; every other caller reuses the cached token
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenRequests))
}

func TestPayPalCreateOrderAmountFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			w.Write([]byte(`{"access_token": "tok", "expires_in": 3600}`))
		case "/v2/checkout/orders":
			var body struct {
				Intent        string `json:"intent"`
				PurchaseUnits []struct {
					Amount struct {
						CurrencyCode string `json:"currency_code"`
						Value        string `json:"value"`
					} `json:"amount"`
				} `json:"purchase_units"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "CAPTURE", body.Intent)
			assert.Equal(t, "CAD", body.PurchaseUnits[0].Amount.CurrencyCode)
			assert.Equal(t, "5.99", body.PurchaseUnits[0].Amount.Value)
			w.Write([]byte(`{"id": "ORDER-2", "status": "CREATED"}`))
		}
	}))
	defer server.Close()

	client := NewPayPalClient(server.URL, "id", "secret")
	_, err := client.CreateOrder(context.Background(), 599, "CAD", "Basic analysis")
	assert.NoError(t, err)
}

func TestPayPalIsConfigured(t *testing.T) {
	assert.True(t, NewPayPalClient("https://api.sandbox.paypal.com", "id", "secret").IsConfigured())
	assert.False(t, NewPayPalClient("https://api.sandbox.paypal.com", "", "").IsConfigured())
}
