package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourtListenerSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/", r.URL.Path)
		assert.Equal(t, "o", r.URL.Query().Get("type"))
		assert.Equal(t, "landlord tenant heat", r.URL.Query().Get("q"))
		w.Write([]byte(`{"results": [
			{"caseName": "Smith v. Jones", "citation": "2021 ONSC 100", "court": "ONSC", "dateFiled": "2021-03-01", "snippet": "heat was shut off"},
			{"caseName": "Doe v. Roe", "citation": "2019 ONSC 50", "court": "ONSC", "dateFiled": "2019-01-15", "snippet": ""}
		]}`))
	}))
	defer server.Close()

	client := NewCourtListenerClient(server.URL)
	results, err := client.Search(context.Background(), "landlord tenant heat", 5)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "Smith v. Jones", results[0].Title)
	assert.Equal(t, "2021 ONSC 100", results[0].Citation)
}

func TestCourtListenerSearchRespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"caseName": "A"}, {"caseName": "B"}, {"caseName": "C"}
		]}`))
	}))
	defer server.Close()

	client := NewCourtListenerClient(server.URL)
	results, err := client.Search(context.Background(), "q", 2)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCourtListenerSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewCourtListenerClient(server.URL)
	_, err := client.Search(context.Background(), "q", 5)
	assert.Error(t, err)
}

func TestCanLIISearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/caseBrowse/en/", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"cases": [
			{"title": "R. v. Example", "citation": "2020 ONCA 1", "databaseId": "onca", "caseId": {"en": "2020onca1"}}
		]}`))
	}))
	defer server.Close()

	client := NewCanLIIClient(server.URL, "secret-key")
	results, err := client.Search(context.Background(), "assault", 5)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "R. v. Example", results[0].Title)
	assert.Contains(t, results[0].URL, "2020onca1")
}
