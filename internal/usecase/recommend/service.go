// Package recommend implements the dataset recommendation engine: intent
// parsing, two-strategy candidate retrieval, deduplication, multi-factor
// scoring, explanation, and ranking.
package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/datadex-io/datadex/internal/domain"
	"github.com/datadex-io/datadex/internal/domain/dataset"
	"github.com/datadex-io/datadex/internal/domain/intent"
	"github.com/datadex-io/datadex/internal/domain/recommendation"
	"github.com/datadex-io/datadex/internal/metrics"
)

// Defaults for a recommendation request.
const (
	DefaultLimit    = 10
	DefaultMinScore = 0.1
)

// Lexical retrieval takes at most this many query terms, each longer than
// minNameTermLen characters.
const (
	maxNameTerms   = 5
	minNameTermLen = 3
)

// maxSampleFields caps how many schema columns a recommendation exposes.
const maxSampleFields = 5

// Options tune a single recommendation request.
type Options struct {
	// Limit caps the number of returned recommendations. <= 0 means DefaultLimit.
	Limit int
	// MinScore filters out candidates below the given relevance. nil means the
	// service default; an explicit zero disables the filter.
	MinScore *float64
	// Categories optionally restricts semantic retrieval to a business-category
	// allow-list.
	Categories []string
}

// Service is the recommendation engine. Stateless between requests; safe for
// concurrent use.
type Service struct {
	repo            Repository
	embed           domain.Embedder // nil when no provider is configured
	weights         Weights
	defaultLimit    int
	defaultMinScore float64
	logger          *zap.Logger
}

// New creates a recommendation service. embed may be nil; requests then run
// on the lexical strategy with a neutral semantic component.
func New(repo Repository, embed domain.Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:            repo,
		embed:           embed,
		weights:         DefaultWeights(),
		defaultLimit:    DefaultLimit,
		defaultMinScore: DefaultMinScore,
		logger:          logger,
	}
}

// WithWeights overrides the scoring weights.
func (s *Service) WithWeights(w Weights) *Service {
	s.weights = w
	return s
}

// WithDefaults overrides the per-request limit and min-score defaults,
// typically from configuration. Non-positive values keep the built-in defaults.
func (s *Service) WithDefaults(limit int, minScore float64) *Service {
	if limit > 0 {
		s.defaultLimit = limit
	}
	if minScore > 0 {
		s.defaultMinScore = minScore
	}
	return s
}

// Recommend returns the ranked datasets most relevant to the query. An empty
// result is not an error; the only errors surfaced are store failures.
func (s *Service) Recommend(
	ctx context.Context, query string, opts Options,
) ([]recommendation.Recommendation, error) {
	start := time.Now()

	if opts.Limit <= 0 {
		opts.Limit = s.defaultLimit
	}
	minScore := s.defaultMinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}

	in := intent.Parse(query)
	s.embedQuery(ctx, &in)

	metrics.RecommendRequestsTotal.WithLabelValues(in.Type).Inc()

	candidates, err := s.retrieve(ctx, &in, opts)
	if err != nil {
		return nil, err
	}

	candidates = dedupe(candidates)

	hasEmbedding := len(in.Embedding) > 0
	recs := make([]recommendation.Recommendation, 0, len(candidates))
	for i := range candidates {
		recs = append(recs, s.buildRecommendation(&candidates[i], &in, hasEmbedding))
	}

	recs = rank(recs, minScore, opts.Limit)

	if len(recs) == 0 {
		metrics.RecommendEmptyTotal.Inc()
	}
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	return recs, nil
}

// embedQuery asks the provider for a query embedding. Provider failures
// degrade the request to the lexical-only path instead of failing it. Empty
// queries are embedded like any other so they can still retrieve semantically.
func (s *Service) embedQuery(ctx context.Context, in *intent.Intent) {
	if s.embed == nil {
		return
	}

	res, err := s.embed.Embed(ctx, in.OriginalQuery)
	if err != nil {
		s.logger.Warn("Query embedding failed, continuing without semantic retrieval",
			zap.Error(err))
		return
	}
	in.Embedding = res.Embedding
}

// retrieve runs the semantic and lexical strategies concurrently and
// concatenates their results. Either strategy may contribute nothing; a store
// failure on either path fails the request.
func (s *Service) retrieve(
	ctx context.Context, in *intent.Intent, opts Options,
) ([]dataset.Candidate, error) {
	var (
		wg                   sync.WaitGroup
		semantic, lexical    []dataset.Candidate
		semanticErr, nameErr error
	)

	if len(in.Embedding) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semantic, semanticErr = s.repo.FetchSemanticCandidates(
				ctx, in.Embedding, opts.Limit, opts.Categories,
			)
		}()
	}

	if terms := nameSearchTerms(in.QueryTerms); len(terms) > 0 {
		if s.repo.SupportsNameSearch(ctx) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lexical, nameErr = s.repo.FetchNameCandidates(ctx, terms, opts.Limit)
			}()
		} else {
			s.logger.Debug("Backend lacks name search, skipping lexical retrieval")
		}
	}

	wg.Wait()

	if semanticErr != nil {
		return nil, fmt.Errorf("fetch semantic candidates: %w", semanticErr)
	}
	if nameErr != nil {
		return nil, fmt.Errorf("fetch name candidates: %w", nameErr)
	}

	// Name hits carry no similarity signal; assign the neutral placeholder so
	// deduplication can compare the two paths.
	for i := range lexical {
		lexical[i].Similarity = LexicalPlaceholderScore
	}

	metrics.RecommendCandidatesTotal.WithLabelValues("semantic").Add(float64(len(semantic)))
	metrics.RecommendCandidatesTotal.WithLabelValues("name").Add(float64(len(lexical)))

	return append(semantic, lexical...), nil
}

// nameSearchTerms selects up to maxNameTerms query terms long enough to be
// meaningful name substrings.
func nameSearchTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if len(t) > minNameTermLen {
			out = append(out, t)
			if len(out) == maxNameTerms {
				break
			}
		}
	}
	return out
}

func (s *Service) buildRecommendation(
	c *dataset.Candidate, in *intent.Intent, hasEmbedding bool,
) recommendation.Recommendation {
	b := scoreCandidate(c, in, hasEmbedding, s.weights)
	r := &c.Record

	return recommendation.Recommendation{
		DatasetID:         r.ID,
		Name:              r.Name,
		Type:              r.Type,
		BusinessCategory:  r.BusinessCategory,
		TechnicalCategory: r.TechnicalCategory,
		KeyFields:         r.KeyFields,
		RelevanceScore:    b.Relevance,
		MatchReasons:      explain(&b, r, in),
		SampleFields:      sampleFields(r),
		Description:       r.Description,
	}
}

// sampleFields maps up to maxSampleFields schema column names to their types.
func sampleFields(r *dataset.Record) map[string]string {
	if len(r.Schema.Columns) == 0 {
		return nil
	}

	n := min(len(r.Schema.Columns), maxSampleFields)
	fields := make(map[string]string, n)
	for _, col := range r.Schema.Columns[:n] {
		fields[col.Name] = col.Type
	}
	return fields
}
