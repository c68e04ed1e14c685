package places

import (
	"strings"

	"github.com/skinpredict/backend/internal/domain"
)

// Chain-name keyword lists. Classification is a case-insensitive substring
// match; the first bucket with a hit wins.
var (
	luxuryKeywords    = []string{"sephora", "nordstrom", "ulta", "bluemercury", "saks", "bloomingdale", "neiman"}
	drugstoreKeywords = []string{"cvs", "walgreens", "target", "walmart", "rite aid", "duane reade", "pharmacy"}
	specialtyKeywords = []string{"lush", "kiehl", "body shop", "origins", "aesop", "bath & body"}
)

// bucketCategories lists the product categories a store in each bucket
// plausibly carries
var bucketCategories = map[domain.StoreBucket][]string{
	domain.BucketLuxury:    {"premium skincare", "designer brands", "fragrance"},
	domain.BucketDrugstore: {"drugstore skincare", "sunscreen", "basic toiletries"},
	domain.BucketSpecialty: {"natural skincare", "bath products", "single-brand lines"},
	domain.BucketOther:     {"general beauty"},
}

// classifyBucket places a store into the coarse price-tier bucket used by the
// product-store matcher
func classifyBucket(name string) domain.StoreBucket {
	lower := strings.ToLower(name)
	for _, kw := range luxuryKeywords {
		if strings.Contains(lower, kw) {
			return domain.BucketLuxury
		}
	}
	for _, kw := range drugstoreKeywords {
		if strings.Contains(lower, kw) {
			return domain.BucketDrugstore
		}
	}
	for _, kw := range specialtyKeywords {
		if strings.Contains(lower, kw) {
			return domain.BucketSpecialty
		}
	}
	return domain.BucketOther
}

// classifyChain maps a store name to its chain classification
func classifyChain(name string) domain.StoreType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "sephora"):
		return domain.StoreSephora
	case strings.Contains(lower, "ulta"):
		return domain.StoreUltaBeauty
	case strings.Contains(lower, "target"):
		return domain.StoreTarget
	case strings.Contains(lower, "cvs"),
		strings.Contains(lower, "walgreens"),
		strings.Contains(lower, "rite aid"),
		strings.Contains(lower, "duane reade"),
		strings.Contains(lower, "pharmacy"):
		return domain.StorePharmacy
	}
	return domain.StoreBeautyGeneric
}

// mapStore converts a places API result into a domain Store
func mapStore(p place) domain.Store {
	bucket := classifyBucket(p.Name)

	store := domain.Store{
		Name:       p.Name,
		Address:    p.Vicinity,
		Lat:        p.Geometry.Location.Lat,
		Lng:        p.Geometry.Location.Lng,
		Rating:     p.Rating,
		PlaceID:    p.PlaceID,
		Type:       classifyChain(p.Name),
		Bucket:     bucket,
		Categories: bucketCategories[bucket],
	}

	if p.OpeningHours != nil {
		open := p.OpeningHours.OpenNow
		store.OpenNow = &open
	}
	if len(p.Photos) > 0 {
		store.PhotoReference = p.Photos[0].PhotoReference
	}

	return store
}
