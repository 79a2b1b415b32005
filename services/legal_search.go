package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CaseLawResult is a normalized case-law search hit from either provider
type CaseLawResult struct {
	Title    string `json:"title"`
	Citation string `json:"citation,omitempty"`
	Court    string `json:"court,omitempty"`
	Date     string `json:"date,omitempty"`
	URL      string `json:"url,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// CaseLawSearcher is implemented by both the keyless and licensed clients
type CaseLawSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]CaseLawResult, error)
}

// CourtListenerClient queries the keyless CourtListener search API
type CourtListenerClient struct {
	baseURL string
	client  *http.Client
}

// NewCourtListenerClient creates a client for the keyless case-law search API
func NewCourtListenerClient(baseURL string) *CourtListenerClient {
	return &CourtListenerClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type courtListenerResponse struct {
	Results []struct {
		CaseName    string `json:"caseName"`
		Citation    string `json:"citation"`
		Court       string `json:"court"`
		DateFiled   string `json:"dateFiled"`
		AbsoluteURL string `json:"absolute_url"`
		Snippet     string `json:"snippet"`
	} `json:"results"`
}

// Search runs a full-text opinion search
func (c *CourtListenerClient) Search(ctx context.Context, query string, limit int) ([]CaseLawResult, error) {
	endpoint := fmt.Sprintf("%s/search/?%s", c.baseURL, url.Values{
		"q":    {query},
		"type": {"o"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("case-law search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("case-law search returned status %d", resp.StatusCode)
	}

	var payload courtListenerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]CaseLawResult, 0, limit)
	for _, r := range payload.Results {
		if len(results) >= limit {
			break
		}
		results = append(results, CaseLawResult{
			Title:    r.CaseName,
			Citation: r.Citation,
			Court:    r.Court,
			Date:     r.DateFiled,
			URL:      r.AbsoluteURL,
			Snippet:  r.Snippet,
		})
	}
	return results, nil
}

// CanLIIClient queries the licensed CanLII API. Only constructed when an API
// key is configured.
type CanLIIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCanLIIClient creates a client for the licensed CanLII case-law API
func NewCanLIIClient(baseURL, apiKey string) *CanLIIClient {
	return &CanLIIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type canLIIResponse struct {
	Cases []struct {
		Title    string `json:"title"`
		Citation string `json:"citation"`
		CaseID   struct {
			EN string `json:"en"`
		} `json:"caseId"`
		DatabaseID string `json:"databaseId"`
	} `json:"cases"`
}

// Search browses Ontario case law matching the query
func (c *CanLIIClient) Search(ctx context.Context, query string, limit int) ([]CaseLawResult, error) {
	endpoint := fmt.Sprintf("%s/caseBrowse/en/?%s", c.baseURL, url.Values{
		"api_key":     {c.apiKey},
		"search":      {query},
		"resultCount": {fmt.Sprintf("%d", limit)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build CanLII request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CanLII search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CanLII search returned status %d", resp.StatusCode)
	}

	var payload canLIIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode CanLII response: %w", err)
	}

	results := make([]CaseLawResult, 0, len(payload.Cases))
	for _, r := range payload.Cases {
		results = append(results, CaseLawResult{
			Title:    r.Title,
			Citation: r.Citation,
			Court:    r.DatabaseID,
			URL:      fmt.Sprintf("https://www.canlii.org/en/#search/id=%s", r.CaseID.EN),
		})
	}
	return results, nil
}
