package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

// ErrAddressNotFound is returned when geocoding yields no result
var ErrAddressNotFound = errors.New("address could not be geocoded")

const earthRadiusKm = 6371.0

// Geocoder resolves a free-form address to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon float64, err error)
}

// NominatimGeocoder queries a Nominatim-compatible geocoding endpoint
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewNominatimGeocoder creates a geocoding client
func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address, biased to Canada
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/search?%s", g.baseURL, url.Values{
		"q":            {address},
		"format":       {"json"},
		"limit":        {"1"},
		"countrycodes": {"ca"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build geocode request: %w", err)
	}
	// Nominatim usage policy requires an identifying user agent
	req.Header.Set("User-Agent", "justice-bot/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}
	return lat, lon, nil
}

// Haversine returns the great-circle distance in kilometres between two points
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// TribunalDistance pairs a tribunal location with its distance from a point
type TribunalDistance struct {
	Tribunal   models.Tribunal `json:"tribunal"`
	DistanceKm float64         `json:"distance_km"`
}

// NearestTribunals returns the closest tribunal offices of a type, sorted by
// distance. A zero or negative limit defaults to 3.
func NearestTribunals(db *gorm.DB, tribunalType string, lat, lon float64, limit int) ([]TribunalDistance, error) {
	if limit <= 0 {
		limit = 3
	}

	var tribunals []models.Tribunal
	if err := db.Where("type = ?", tribunalType).Find(&tribunals).Error; err != nil {
		return nil, fmt.Errorf("failed to list tribunals: %w", err)
	}

	ranked := make([]TribunalDistance, 0, len(tribunals))
	for _, t := range tribunals {
		ranked = append(ranked, TribunalDistance{
			Tribunal:   t,
			DistanceKm: Haversine(lat, lon, t.Latitude, t.Longitude),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// ListTribunals returns all tribunal offices, optionally filtered by type
func ListTribunals(db *gorm.DB, tribunalType string) ([]models.Tribunal, error) {
	query := db.Order("name ASC")
	if tribunalType != "" {
		query = query.Where("type = ?", tribunalType)
	}

	var tribunals []models.Tribunal
	err := query.Find(&tribunals).Error
	return tribunals, err
}

// tribunalSeed is the built-in set of Ontario tribunal and court offices
var tribunalSeed = []models.Tribunal{
	{Name: "Landlord and Tenant Board - Toronto", Type: models.TribunalTypeLTB, Address: "15 Grosvenor Street", City: "Toronto", Postal: "M7A 2G6", Latitude: 43.6629, Longitude: -79.3866, Phone: "1-888-332-3234", Website: "https://tribunalsontario.ca/ltb/"},
	{Name: "Landlord and Tenant Board - Ottawa", Type: models.TribunalTypeLTB, Address: "255 Albert Street", City: "Ottawa", Postal: "K1P 6A9", Latitude: 45.4194, Longitude: -75.7004, Phone: "1-888-332-3234", Website: "https://tribunalsontario.ca/ltb/"},
	{Name: "Landlord and Tenant Board - Hamilton", Type: models.TribunalTypeLTB, Address: "119 King Street West", City: "Hamilton", Postal: "L8P 4Y7", Latitude: 43.2570, Longitude: -79.8728, Phone: "1-888-332-3234", Website: "https://tribunalsontario.ca/ltb/"},
	{Name: "Landlord and Tenant Board - London", Type: models.TribunalTypeLTB, Address: "150 Dufferin Avenue", City: "London", Postal: "N6A 5N6", Latitude: 42.9864, Longitude: -81.2463, Phone: "1-888-332-3234", Website: "https://tribunalsontario.ca/ltb/"},
	{Name: "Human Rights Tribunal of Ontario", Type: models.TribunalTypeHRTO, Address: "25 Grosvenor Street", City: "Toronto", Postal: "M7A 1R1", Latitude: 43.6632, Longitude: -79.3862, Phone: "1-866-598-0322", Website: "https://tribunalsontario.ca/hrto/"},
	{Name: "Small Claims Court - Toronto", Type: models.TribunalTypeSmallClaims, Address: "47 Sheppard Avenue East", City: "Toronto", Postal: "M2N 5N1", Latitude: 43.7615, Longitude: -79.4110, Phone: "416-326-3554", Website: "https://www.ontariocourts.ca/scj/small-claims/"},
	{Name: "Small Claims Court - Ottawa", Type: models.TribunalTypeSmallClaims, Address: "161 Elgin Street", City: "Ottawa", Postal: "K2P 2K1", Latitude: 45.4208, Longitude: -75.6904, Phone: "613-239-1274", Website: "https://www.ontariocourts.ca/scj/small-claims/"},
	{Name: "Small Claims Court - Hamilton", Type: models.TribunalTypeSmallClaims, Address: "45 Main Street East", City: "Hamilton", Postal: "L8N 2B7", Latitude: 43.2557, Longitude: -79.8668, Phone: "905-645-5252", Website: "https://www.ontariocourts.ca/scj/small-claims/"},
	{Name: "Small Claims Court - London", Type: models.TribunalTypeSmallClaims, Address: "80 Dundas Street", City: "London", Postal: "N6A 6A3", Latitude: 42.9837, Longitude: -81.2497, Phone: "519-660-3000", Website: "https://www.ontariocourts.ca/scj/small-claims/"},
	{Name: "Divisional Court - Osgoode Hall", Type: models.TribunalTypeDivisional, Address: "130 Queen Street West", City: "Toronto", Postal: "M5H 2N5", Latitude: 43.6517, Longitude: -79.3860, Phone: "416-327-5100", Website: "https://www.ontariocourts.ca/scj/divisional-court/"},
}

// SeedTribunals inserts the built-in tribunal locations if the table is empty
func SeedTribunals(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Tribunal{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tribunals: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range tribunalSeed {
		t := tribunalSeed[i]
		if err := db.Create(&t).Error; err != nil {
			return fmt.Errorf("failed to seed tribunal %s: %w", t.Name, err)
		}
	}
	return nil
}
