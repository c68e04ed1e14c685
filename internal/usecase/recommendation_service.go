package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/internal/domain"
)

const (
	// defaultMaxRecommendations caps a recommendation response when the
	// caller does not ask for a specific count
	defaultMaxRecommendations = 8

	// perRetailerFetch is how many products each retailer is asked for
	perRetailerFetch = 4

	// defaultRetailerTimeout bounds each retailer fetch independently so one
	// slow retailer cannot stall the whole response
	defaultRetailerTimeout = 10 * time.Second
)

// RecommendRequest carries the parameters of one recommendation lookup
type RecommendRequest struct {
	SkinType    domain.SkinType
	SkinIssues  []domain.SkinIssue
	Gender      domain.Gender
	AgeGroup    string
	MaxProducts int
	Country     string
}

// RecommendationService aggregates live retailer results with the static
// catalog. Retailer failures are absorbed: the response degrades to catalog
// entries rather than erroring.
type RecommendationService struct {
	adapters        []domain.RetailerAdapter
	catalog         *CatalogStore
	retailerTimeout time.Duration
	log             *logrus.Entry
}

// NewRecommendationService creates the aggregation service. Adapter order is
// significant: merged results list the first adapter's products first.
func NewRecommendationService(catalog *CatalogStore, retailerTimeout time.Duration, adapters ...domain.RetailerAdapter) *RecommendationService {
	if retailerTimeout <= 0 {
		retailerTimeout = defaultRetailerTimeout
	}
	return &RecommendationService{
		adapters:        adapters,
		catalog:         catalog,
		retailerTimeout: retailerTimeout,
		log:             logrus.WithField("component", "recommendations"),
	}
}

// Recommend returns up to req.MaxProducts recommendations for the skin
// profile. Retailers are queried in parallel; if together they return fewer
// than half the requested count, catalog entries backfill the list. Merged
// results are deduplicated by case-insensitive brand+name, first seen wins.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendRequest) []domain.Product {
	maxProducts := req.MaxProducts
	if maxProducts <= 0 {
		maxProducts = defaultMaxRecommendations
	}

	query := domain.ScrapeQuery{
		SkinType:    req.SkinType,
		SkinIssues:  req.SkinIssues,
		Gender:      req.Gender,
		AgeGroup:    req.AgeGroup,
		MaxProducts: perRetailerFetch,
	}

	results := make([]domain.ScrapeResult, len(s.adapters))
	var wg sync.WaitGroup
	for i, adapter := range s.adapters {
		wg.Add(1)
		go func(i int, adapter domain.RetailerAdapter) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, s.retailerTimeout)
			defer cancel()
			results[i] = adapter.Fetch(fetchCtx, query)
		}(i, adapter)
	}
	wg.Wait()

	var scraped []domain.Product
	for _, result := range results {
		if result.Failed() {
			s.log.Warnf("retailer %s fetch failed: %v", result.Retailer, result.Err)
			continue
		}
		s.log.Debugf("retailer %s returned %d products", result.Retailer, len(result.Products))
		scraped = append(scraped, result.Products...)
	}
	scraped = domain.DedupeProducts(scraped)

	merged := scraped
	// compare against half without integer truncation: for maxProducts=3,
	// one scraped product is below the threshold and must be backfilled
	if len(scraped)*2 < maxProducts {
		fallback := s.catalog.Lookup(req.SkinType, req.SkinIssues, req.Gender, maxProducts)
		merged = domain.DedupeProducts(append(scraped, fallback...))
	}

	if len(merged) > maxProducts {
		merged = merged[:maxProducts]
	}
	return annotateCountry(merged, req.Country)
}

// countryCurrencies maps ISO country codes to the currency shown on product
// prices for that market
var countryCurrencies = map[string]string{
	"US": "USD",
	"CA": "CAD",
	"GB": "GBP",
	"UK": "GBP",
	"FR": "EUR",
	"DE": "EUR",
	"TN": "TND",
}

func annotateCountry(products []domain.Product, country string) []domain.Product {
	if country == "" {
		return products
	}
	currency, ok := countryCurrencies[country]
	if !ok {
		currency = "USD"
	}
	for i := range products {
		products[i].AvailableIn = country
		products[i].Currency = currency
	}
	return products
}
