// Package valkey implements db.Store on Valkey with valkey-search. The
// protocol matches Redis, so the driver wraps the redis implementation and
// masks the capabilities valkey-search lacks.
package valkey

import (
	"context"
	"fmt"

	"github.com/datadex-io/datadex/internal/db"
	"github.com/datadex-io/datadex/internal/db/redis"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Valkey store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Store implements db.Store for Valkey.
type Store struct {
	*redis.Store
}

// NewStore creates a Valkey store.
func NewStore(cfg Config) (*Store, error) {
	inner, err := redis.NewStore(redis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, err
	}
	return &Store{Store: inner}, nil
}

// SupportsNameSearch returns false: valkey-search indexes TAG, NUMERIC, and
// VECTOR fields only, so substring matching on TEXT fields is unavailable.
func (s *Store) SupportsNameSearch(_ context.Context) bool {
	return false
}

// SearchSubstring always fails on Valkey; callers are expected to consult
// SupportsNameSearch first.
func (s *Store) SearchSubstring(_ context.Context, _ *db.SubstringQuery) (*db.SearchResult, error) {
	return nil, fmt.Errorf("valkey: substring search: %w", db.ErrSearchNotSupported)
}
