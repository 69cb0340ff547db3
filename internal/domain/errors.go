package domain

import "errors"

var (
	// ErrDatasetNotFound signals a missing dataset.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrInvalidRequest signals a malformed recommendation request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreUnavailable signals that the dataset store could not be reached.
	ErrStoreUnavailable = errors.New("dataset store unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrNameSearchNotSupported signals that the backend lacks substring name search.
	ErrNameSearchNotSupported = errors.New("name search not supported by backend")
)
