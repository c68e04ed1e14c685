package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

const (
	// storeSearchKeyword is what the places API is queried with when looking
	// for stores that might stock skincare products
	storeSearchKeyword = "beauty skincare cosmetics"
	storeSearchType    = "store"

	dermatologistKeyword = "dermatologist"
	dermatologistType    = "doctor"
	dermatologistRadius  = 5000

	// maxStoresPerProduct caps the store matches attached to each product
	maxStoresPerProduct = 3
)

// knownLuxuryBrands are brands routed to luxury-bucket stores regardless of
// the product's price
var knownLuxuryBrands = map[string]bool{
	"la mer":         true,
	"sk-ii":          true,
	"estée lauder":   true,
	"estee lauder":   true,
	"lancôme":        true,
	"lancome":        true,
	"dior":           true,
	"chanel":         true,
	"la prairie":     true,
	"drunk elephant": true,
	"tatcha":         true,
}

var (
	luxuryPriceFloor      = decimal.NewFromInt(30)
	drugstorePriceCeiling = decimal.NewFromInt(15)
)

// NearbyProductsResult is the locator response: products annotated with store
// matches, the same products grouped by price bucket, and the raw store list
type NearbyProductsResult struct {
	Products       []domain.Product                          `json:"products"`
	GroupedByPrice map[domain.PriceCategory][]domain.Product `json:"groupedByPrice"`
	NearbyStores   []domain.Store                            `json:"nearbyStores"`
}

// LocatorService resolves physical stores near a location and matches them
// against recommended products
type LocatorService struct {
	places   domain.PlacesClient
	cache    domain.CacheRepository
	cacheTTL time.Duration
	log      *logrus.Entry
}

// NewLocatorService creates the store locator service
func NewLocatorService(places domain.PlacesClient, cache domain.CacheRepository, cacheTTL time.Duration) *LocatorService {
	return &LocatorService{
		places:   places,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      logrus.WithField("component", "locator"),
	}
}

// FindDermatologists returns dermatologist practices near the coordinates
func (s *LocatorService) FindDermatologists(ctx context.Context, lat, lng float64) ([]domain.Store, error) {
	return s.places.NearbySearch(ctx, lat, lng, dermatologistRadius, dermatologistType, dermatologistKeyword)
}

// AnnotateWithNearbyStores attaches up to maxStoresPerProduct store matches
// to each product and groups the annotated products by price bucket. The
// grouped map always carries all three buckets, empty or not.
func (s *LocatorService) AnnotateWithNearbyStores(ctx context.Context, products []domain.Product, lat, lng float64, radius int) (*NearbyProductsResult, error) {
	stores, err := s.nearbyStores(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}

	annotated := make([]domain.Product, len(products))
	copy(annotated, products)
	grouped := map[domain.PriceCategory][]domain.Product{
		domain.PriceBudget:   {},
		domain.PriceModerate: {},
		domain.PricePremium:  {},
	}
	for i := range annotated {
		if annotated[i].PriceCategory == "" {
			annotated[i].PriceCategory = domain.CategorizePrice(annotated[i].Price)
		}
		annotated[i].NearbyStores = matchStores(annotated[i], stores)
		grouped[annotated[i].PriceCategory] = append(grouped[annotated[i].PriceCategory], annotated[i])
	}

	return &NearbyProductsResult{
		Products:       annotated,
		GroupedByPrice: grouped,
		NearbyStores:   stores,
	}, nil
}

// nearbyStores looks up beauty-relevant stores near the coordinates, with a
// short-TTL cache keyed on the rounded location so repeated lookups from the
// same user do not re-hit the places API
func (s *LocatorService) nearbyStores(ctx context.Context, lat, lng float64, radius int) ([]domain.Store, error) {
	cacheKey := fmt.Sprintf("stores:%.4f:%.4f:%d", lat, lng, radius)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			if stores, ok := cached.([]domain.Store); ok {
				s.log.Debugf("store cache hit for %s", cacheKey)
				return stores, nil
			}
		}
	}

	stores, err := s.places.NearbySearch(ctx, lat, lng, radius, storeSearchType, storeSearchKeyword)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stores, s.cacheTTL); err != nil {
			s.log.Warnf("failed to cache stores for %s: %v", cacheKey, err)
		}
	}
	return stores, nil
}

// matchStores picks the stores most likely to stock the product. Expensive or
// known-luxury products route to luxury-bucket stores, cheap products to
// drugstores, and any store whose name contains the brand always qualifies.
// When nothing matches, the nearest stores stand in so every product carries
// at least one option when stores exist at all.
func matchStores(p domain.Product, stores []domain.Store) []domain.StoreMatch {
	brand := strings.ToLower(strings.TrimSpace(p.Brand))
	luxury := knownLuxuryBrands[brand] || p.Price.GreaterThan(luxuryPriceFloor)

	var candidates []domain.Store
	seen := make(map[string]bool)
	add := func(store domain.Store) {
		if seen[store.PlaceID] {
			return
		}
		seen[store.PlaceID] = true
		candidates = append(candidates, store)
	}

	for _, store := range stores {
		if brand != "" && strings.Contains(strings.ToLower(store.Name), brand) {
			add(store)
		}
	}
	for _, store := range stores {
		if luxury && store.Bucket == domain.BucketLuxury {
			add(store)
		} else if !luxury && p.Price.LessThan(drugstorePriceCeiling) && store.Bucket == domain.BucketDrugstore {
			add(store)
		}
	}

	if len(candidates) == 0 {
		for i := 0; i < len(stores) && i < maxStoresPerProduct; i++ {
			add(stores[i])
		}
	}
	if len(candidates) > maxStoresPerProduct {
		candidates = candidates[:maxStoresPerProduct]
	}

	matches := make([]domain.StoreMatch, 0, len(candidates))
	for _, store := range candidates {
		matches = append(matches, domain.StoreMatch{
			Name:    store.Name,
			Address: store.Address,
			Lat:     store.Lat,
			Lng:     store.Lng,
			Rating:  store.Rating,
			OpenNow: store.OpenNow,
			MapLink: "https://www.google.com/maps/place/?q=place_id:" + store.PlaceID,
		})
	}
	return matches
}
