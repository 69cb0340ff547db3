package datadex

import "github.com/datadex-io/datadex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDatasetNotFound        = domain.ErrDatasetNotFound
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrStoreUnavailable       = domain.ErrStoreUnavailable
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrNameSearchNotSupported = domain.ErrNameSearchNotSupported
)
