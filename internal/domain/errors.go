package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are missing or malformed
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidImage is returned when the submitted image cannot be decoded
	ErrInvalidImage = errors.New("invalid image format")

	// ErrNoFaceDetected is returned when the face detector finds no face in the image
	ErrNoFaceDetected = errors.New("no face detected in the image")

	// ErrRetailerUnavailable is returned when a retailer site is unreachable or
	// its markup no longer matches any known selector
	ErrRetailerUnavailable = errors.New("retailer request failed")

	// ErrPlacesAPIFailure is returned when the places API request fails
	ErrPlacesAPIFailure = errors.New("places API request failed")

	// ErrChatAPIFailure is returned when the chat completion API request fails
	ErrChatAPIFailure = errors.New("chat API request failed")

	// ErrMissingAPIKey is returned when a required upstream API key is unset
	ErrMissingAPIKey = errors.New("API key is not configured")

	// ErrClassifierUnavailable is returned when neither a local classifier nor a
	// chat API key is available for skin analysis
	ErrClassifierUnavailable = errors.New("no skin classifier available")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
