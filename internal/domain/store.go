package domain

// StoreType is the chain classification of a physical store
type StoreType string

const (
	StoreSephora       StoreType = "Sephora"
	StoreUltaBeauty    StoreType = "UltaBeauty"
	StoreTarget        StoreType = "Target"
	StorePharmacy      StoreType = "Pharmacy"
	StoreBeautyGeneric StoreType = "BeautyStoreGeneric"
)

// StoreBucket is the coarse price-tier classification used by the
// product-store matcher
type StoreBucket string

const (
	BucketLuxury    StoreBucket = "luxury"
	BucketDrugstore StoreBucket = "drugstore"
	BucketSpecialty StoreBucket = "specialty"
	BucketOther     StoreBucket = "other"
)

// Store is a physical retail store discovered via the places API.
// Constructed per request, never persisted.
type Store struct {
	Name           string      `json:"name"`
	Address        string      `json:"address"`
	Lat            float64     `json:"lat"`
	Lng            float64     `json:"lng"`
	Rating         float64     `json:"rating,omitempty"`
	PlaceID        string      `json:"placeId"`
	OpenNow        *bool       `json:"openNow,omitempty"`
	PhotoReference string      `json:"photoReference,omitempty"`
	Type           StoreType   `json:"storeType"`
	Bucket         StoreBucket `json:"bucket"`
	Categories     []string    `json:"categories,omitempty"`
}

// StoreMatch is a nearby store attached to a recommended product
type StoreMatch struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Rating  float64 `json:"rating,omitempty"`
	OpenNow *bool   `json:"openNow,omitempty"`
	MapLink string  `json:"mapLink"`
}
