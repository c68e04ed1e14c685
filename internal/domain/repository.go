package domain

import (
	"context"
	"time"
)

// RetailerAdapter fetches and normalizes products from one external retailer
type RetailerAdapter interface {
	Name() string
	Fetch(ctx context.Context, query ScrapeQuery) ScrapeResult
}

// PlacesClient defines the interface for the maps/places lookup API
type PlacesClient interface {
	NearbySearch(ctx context.Context, lat, lng float64, radius int, placeType, keyword string) ([]Store, error)
}

// ChatCompleter defines the interface for the chat/vision completion API
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
	DescribeImage(ctx context.Context, imageBase64 string) (string, error)
}

// SkinClassifier is the capability interface for a pretrained local skin
// model. It is an optional, constructor-injected dependency: when absent the
// analysis service falls back to the vision API.
type SkinClassifier interface {
	Classify(ctx context.Context, image []byte) (*ClassifierResult, error)
}

// FaceDetector locates and crops the face in a facial image
type FaceDetector interface {
	CropFace(image []byte) ([]byte, error)
}

// DemographicClassifier predicts demographic attributes from a face crop
type DemographicClassifier interface {
	Predict(ctx context.Context, face []byte) (*Demographics, error)
}

// Mailer sends analysis results to a recipient
type Mailer interface {
	SendResults(ctx context.Context, recipient string, results *SkinAnalysis) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
