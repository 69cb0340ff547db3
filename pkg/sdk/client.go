package datadex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datadex-io/datadex/internal/db"
	dbRedis "github.com/datadex-io/datadex/internal/db/redis"
	dbValkey "github.com/datadex-io/datadex/internal/db/valkey"
	"github.com/datadex-io/datadex/internal/domain"
	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/recommendation"
	datasetrepo "github.com/datadex-io/datadex/internal/repository/dataset"
	healthuc "github.com/datadex-io/datadex/internal/usecase/health"
	recommenduc "github.com/datadex-io/datadex/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultVectorDimensions = 1536
)

// Internal interfaces so tests can substitute use cases.
type recommendUseCase interface {
	Recommend(ctx context.Context, query string, opts recommenduc.Options) ([]recommendation.Recommendation, error)
}

type datasetRepository interface {
	Get(ctx context.Context, id string) (dataset.Record, error)
	Upsert(ctx context.Context, rec *dataset.Record, vector []float32) error
	Delete(ctx context.Context, id string) error
	EnsureIndex(ctx context.Context, dim int, hnsw datasetrepo.HNSWConfig) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the datadex SDK entry point.
type Client struct {
	store        db.Store
	recommendSvc recommendUseCase
	datasets     datasetRepository
	embedder     Embedder
	healthSvc    healthUseCase
	obs          *observer

	vectorDimensions int
	hnsw             datasetrepo.HNSWConfig
}

// New creates a datadex Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		vectorDimensions: defaultVectorDimensions,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("datadex: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("datadex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("datadex: create valkey store: %w", err)
		}
		return s, nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("datadex: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("datadex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := datasetrepo.New(store)

	// nil interface, not a typed nil pointer, when no embedder is configured.
	var domEmb domain.Embedder
	if cfg.embedder != nil {
		domEmb = &embedderAdapter{inner: cfg.embedder}
	}

	svc := recommenduc.New(repo, domEmb, nil)
	if cfg.weights != nil {
		svc = svc.WithWeights(weightsToInternal(*cfg.weights))
	}

	return &Client{
		store:        store,
		recommendSvc: svc,
		datasets:     repo,
		embedder:     cfg.embedder,
		healthSvc:    healthuc.New(store, nil),
		obs:          obs,

		vectorDimensions: cfg.vectorDimensions,
		hnsw: datasetrepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		},
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the dataset search index when missing.
func (c *Client) EnsureIndex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("index.ensure", start, err) }()

	if err = c.datasets.EnsureIndex(ctx, c.vectorDimensions, c.hnsw); err != nil {
		return fmt.Errorf("datadex: ensure index: %w", err)
	}
	return nil
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
