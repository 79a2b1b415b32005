package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// PayPal status values as reported by the provider
const (
	PayPalOrderCompleted     = "COMPLETED"
	PayPalSubscriptionActive = "ACTIVE"
)

// PayPalClient talks to the PayPal REST API using the client-credentials flow.
// The base URL points at the sandbox or live environment.
type PayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client

	// cached OAuth token, shared across request goroutines
	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalClient creates a PayPal API client
func NewPayPalClient(baseURL, clientID, clientSecret string) *PayPalClient {
	return &PayPalClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured returns true when credentials are present
func (p *PayPalClient) IsConfigured() bool {
	return p.clientID != "" && p.clientSecret != ""
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken exchanges client credentials for an OAuth token, reusing a
// cached token until shortly before expiry. One client is shared by all
// request goroutines, so the cache is guarded by tokenMu; the lock is held
// across the exchange so concurrent callers do not each hit the provider.
func (p *PayPalClient) getAccessToken(ctx context.Context) (string, error) {
	p.tokenMu.Lock()
	defer p.tokenMu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("PayPal token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PayPal token exchange returned status %d", resp.StatusCode)
	}

	var token paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	p.accessToken = token.AccessToken
	// Renew a minute early to avoid using a token at the edge of expiry
	p.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)
	return p.accessToken, nil
}

// PayPalOrder is the subset of the order response this service reads
type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// CreateOrder creates a PayPal order for a one-time purchase
func (p *PayPalClient) CreateOrder(ctx context.Context, amountCents int64, currency, description string) (*PayPalOrder, error) {
	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"description": description,
				"amount": map[string]string{
					"currency_code": currency,
					"value":         fmt.Sprintf("%d.%02d", amountCents/100, amountCents%100),
				},
			},
		},
	}

	var order PayPalOrder
	if err := p.doJSON(ctx, http.MethodPost, "/v2/checkout/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CaptureOrder captures an approved order. The returned status drives the
// payment state transition; only COMPLETED results in an entitlement.
func (p *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*PayPalOrder, error) {
	var order PayPalOrder
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	if err := p.doJSON(ctx, http.MethodPost, path, map[string]interface{}{}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PayPalSubscription is the subset of the subscription response this service reads
type PayPalSubscription struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	PlanID string `json:"plan_id"`
}

// CreateSubscription creates a recurring subscription against a plan
func (p *PayPalClient) CreateSubscription(ctx context.Context, planID string) (*PayPalSubscription, error) {
	body := map[string]interface{}{"plan_id": planID}

	var sub PayPalSubscription
	if err := p.doJSON(ctx, http.MethodPost, "/v1/billing/subscriptions", body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetSubscription fetches a subscription's current status for verification
func (p *PayPalClient) GetSubscription(ctx context.Context, subscriptionID string) (*PayPalSubscription, error) {
	var sub PayPalSubscription
	path := fmt.Sprintf("/v1/billing/subscriptions/%s", subscriptionID)
	if err := p.doJSON(ctx, http.MethodGet, path, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// doJSON performs an authenticated JSON request against the PayPal API
func (p *PayPalClient) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build PayPal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("PayPal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("PayPal returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode PayPal response: %w", err)
		}
	}
	return nil
}
