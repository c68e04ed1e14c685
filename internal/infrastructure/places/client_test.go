package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinpredict/backend/internal/domain"
)

const nearbyFixture = `{
  "status": "OK",
  "results": [
    {
      "name": "Sephora Union Square",
      "vicinity": "45 E 17th St, New York",
      "geometry": {"location": {"lat": 40.737, "lng": -73.990}},
      "rating": 4.3,
      "place_id": "pid-sephora",
      "opening_hours": {"open_now": true},
      "photos": [{"photo_reference": "ref-1"}]
    },
    {
      "name": "CVS Pharmacy",
      "vicinity": "1 Broadway, New York",
      "geometry": {"location": {"lat": 40.704, "lng": -74.013}},
      "rating": 3.1,
      "place_id": "pid-cvs"
    },
    {
      "name": "Glow Beauty Supply",
      "vicinity": "12 Canal St, New York",
      "geometry": {"location": {"lat": 40.718, "lng": -74.000}},
      "rating": 4.8,
      "place_id": "pid-glow"
    }
  ]
}`

func TestNearbySearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/place/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "store", r.URL.Query().Get("type"))
		assert.Equal(t, "beauty skincare", r.URL.Query().Get("keyword"))
		assert.Equal(t, "5000", r.URL.Query().Get("radius"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nearbyFixture))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	stores, err := client.NearbySearch(context.Background(), 40.74, -73.99, 5000, "store", "beauty skincare")

	require.NoError(t, err)
	require.Len(t, stores, 3)

	sephora := stores[0]
	assert.Equal(t, "Sephora Union Square", sephora.Name)
	assert.Equal(t, domain.StoreSephora, sephora.Type)
	assert.Equal(t, domain.BucketLuxury, sephora.Bucket)
	require.NotNil(t, sephora.OpenNow)
	assert.True(t, *sephora.OpenNow)
	assert.Equal(t, "ref-1", sephora.PhotoReference)

	cvs := stores[1]
	assert.Equal(t, domain.StorePharmacy, cvs.Type)
	assert.Equal(t, domain.BucketDrugstore, cvs.Bucket)
	assert.Nil(t, cvs.OpenNow)

	generic := stores[2]
	assert.Equal(t, domain.StoreBeautyGeneric, generic.Type)
	assert.Equal(t, domain.BucketOther, generic.Bucket)
}

func TestNearbySearch_MissingAPIKey(t *testing.T) {
	client := NewClient("", "https://example.com")

	_, err := client.NearbySearch(context.Background(), 40.74, -73.99, 5000, "store", "beauty")
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestNearbySearch_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	_, err := client.NearbySearch(context.Background(), 40.74, -73.99, 5000, "store", "beauty")

	assert.ErrorIs(t, err, domain.ErrPlacesAPIFailure)
}

func TestNearbySearch_APIStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL)
	_, err := client.NearbySearch(context.Background(), 40.74, -73.99, 5000, "store", "beauty")

	assert.ErrorIs(t, err, domain.ErrPlacesAPIFailure)
}

func TestNearbySearch_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	stores, err := client.NearbySearch(context.Background(), 0, 0, 1000, "store", "beauty")

	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestClassifyBucket(t *testing.T) {
	tests := []struct {
		name     string
		expected domain.StoreBucket
	}{
		{"SEPHORA at Kohl's", domain.BucketLuxury},
		{"Nordstrom Rack", domain.BucketLuxury},
		{"Walgreens #123", domain.BucketDrugstore},
		{"Super Target", domain.BucketDrugstore},
		{"Kiehl's Since 1851", domain.BucketSpecialty},
		{"Lush Cosmetics", domain.BucketSpecialty},
		{"Corner Beauty Shop", domain.BucketOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyBucket(tt.name))
		})
	}
}
