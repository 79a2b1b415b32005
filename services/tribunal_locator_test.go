package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTribunalTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Tribunal{})
	return db
}

func TestHaversineKnownDistance(t *testing.T) {
	// Toronto to Ottawa is roughly 350km as the crow flies
	d := Haversine(43.6532, -79.3832, 45.4215, -75.6972)
	assert.InDelta(t, 352, d, 10)

	// Zero distance to itself
	assert.InDelta(t, 0, Haversine(43.65, -79.38, 43.65, -79.38), 0.001)
}

func TestNearestTribunalsOrdering(t *testing.T) {
	db := setupTribunalTestDB()
	assert.NoError(t, SeedTribunals(db))

	// From downtown Toronto, the Toronto LTB office must rank first and
	// distances must be non-decreasing
	results, err := NearestTribunals(db, models.TribunalTypeLTB, 43.6532, -79.3832, 3)
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Contains(t, results[0].Tribunal.Name, "Toronto")
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].DistanceKm, results[i-1].DistanceKm)
	}

	// From Ottawa, the Ottawa office ranks first
	results, err = NearestTribunals(db, models.TribunalTypeLTB, 45.4215, -75.6972, 1)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Contains(t, results[0].Tribunal.Name, "Ottawa")
}

func TestNearestTribunalsFiltersByType(t *testing.T) {
	db := setupTribunalTestDB()
	assert.NoError(t, SeedTribunals(db))

	results, err := NearestTribunals(db, models.TribunalTypeHRTO, 43.6532, -79.3832, 5)
	assert.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, models.TribunalTypeHRTO, r.Tribunal.Type)
	}
}

func TestNearestTribunalsDefaultLimit(t *testing.T) {
	db := setupTribunalTestDB()
	assert.NoError(t, SeedTribunals(db))

	results, err := NearestTribunals(db, models.TribunalTypeSmallClaims, 43.6532, -79.3832, 0)
	assert.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestListTribunals(t *testing.T) {
	db := setupTribunalTestDB()
	assert.NoError(t, SeedTribunals(db))

	all, err := ListTribunals(db, "")
	assert.NoError(t, err)
	assert.Len(t, all, len(tribunalSeed))

	ltb, err := ListTribunals(db, models.TribunalTypeLTB)
	assert.NoError(t, err)
	assert.Len(t, ltb, 4)
	for _, tribunal := range ltb {
		assert.Equal(t, models.TribunalTypeLTB, tribunal.Type)
	}
}

func TestSeedTribunalsIdempotent(t *testing.T) {
	db := setupTribunalTestDB()
	assert.NoError(t, SeedTribunals(db))
	assert.NoError(t, SeedTribunals(db))

	var count int64
	db.Model(&models.Tribunal{}).Count(&count)
	assert.Equal(t, int64(len(tribunalSeed)), count)
}

func TestNominatimGeocoder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "ca", r.URL.Query().Get("countrycodes"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat": "43.6532", "lon": "-79.3832"}]`))
	}))
	defer server.Close()

	geo := NewNominatimGeocoder(server.URL)
	lat, lon, err := geo.Geocode(context.Background(), "100 Queen St W, Toronto")
	assert.NoError(t, err)
	assert.InDelta(t, 43.6532, lat, 0.0001)
	assert.InDelta(t, -79.3832, lon, 0.0001)
}

func TestNominatimGeocoderNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geo := NewNominatimGeocoder(server.URL)
	_, _, err := geo.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
