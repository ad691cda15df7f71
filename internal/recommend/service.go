// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/metrics"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// ResponseCache stores encoded recommendation lists. internal/cache backends
// satisfy it.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Service answers the three recommendation queries. It is safe for
// concurrent use; the store is the only shared state.
type Service struct {
	cfg     *Config
	store   featurestore.Store
	scorer  *Scorer
	rule    *CandidateRule
	cache   ResponseCache
	updater *Updater
	logger  zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables response caching.
func WithCache(c ResponseCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithCounterTracking makes view and favorite signals increment counters.
func WithCounterTracking(enabled bool) Option {
	return func(s *Service) { s.updater.trackCounters = enabled }
}

// NewService validates cfg, compiles the candidate rule and wires the store.
func NewService(cfg *Config, store featurestore.Store, logger zerolog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if store == nil {
		return nil, errors.New("recommend: store is required")
	}

	rule, err := CompileRule(cfg.CandidateRule)
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:     cfg,
		store:   store,
		scorer:  NewScorer(cfg),
		rule:    rule,
		updater: NewUpdater(store, false, logger),
		logger:  logger.With().Str("component", "recommend").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info().
		Int64("popularity_threshold", cfg.PopularityThreshold).
		Float64("personalized_threshold", cfg.PersonalizedThreshold).
		Float64("similarity_threshold", cfg.SimilarityThreshold).
		Bool("use_preference_weights", cfg.UsePreferenceWeights).
		Bool("cache", s.cache != nil).
		Str("candidate_rule", rule.String()).
		Msg("recommendation service initialized")

	return s, nil
}

// Config returns the active configuration.
func (s *Service) Config() *Config {
	return s.cfg
}

// Updater returns the preference updater bound to the same store.
func (s *Service) Updater() *Updater {
	return s.updater
}

// ApplySignal folds sig into the user's preferences. Cached personalized
// lists for the user expire with the cache TTL.
func (s *Service) ApplySignal(ctx context.Context, sig models.Signal) error {
	return s.updater.ApplySignal(ctx, sig)
}

// GetPersonalizedRecommendations ranks available properties against the
// stored preferences of userID. A user without preferences gets an empty list.
func (s *Service) GetPersonalizedRecommendations(ctx context.Context, userID int64, limit int, filter models.CandidateFilter) ([]models.ScoredCandidate, error) {
	if userID <= 0 {
		return nil, invalidArgument("user id must be positive, got %d", userID)
	}
	if err := s.checkRequest(limit, &filter); err != nil {
		return nil, err
	}

	key := cacheKey(models.ModePersonalized, userID, limit, &filter)
	return s.serve(ctx, models.ModePersonalized, key, func(ctx context.Context) ([]models.ScoredCandidate, int, error) {
		prefs, err := s.store.LoadPreferences(ctx, userID)
		if err != nil {
			return nil, 0, fmt.Errorf("load preferences of user %d: %w", userID, err)
		}
		profile := BuildProfile(prefs)
		if profile.Empty() {
			return []models.ScoredCandidate{}, 0, nil
		}

		candidates, err := s.loadCandidates(ctx, filter)
		if err != nil {
			return nil, 0, err
		}

		scored := make([]models.ScoredCandidate, 0, len(candidates))
		for i := range candidates {
			scored = append(scored, models.ScoredCandidate{
				Property: candidates[i],
				Score:    s.scorer.Personalized(&candidates[i], &profile),
				Mode:     models.ModePersonalized,
			})
		}

		out, err := Assemble(scored, limit, aboveThreshold(s.cfg.PersonalizedThreshold))
		return out, len(candidates), err
	})
}

// GetTrendingProperties ranks available properties by weighted popularity.
func (s *Service) GetTrendingProperties(ctx context.Context, limit int, filter models.CandidateFilter) ([]models.ScoredCandidate, error) {
	if err := s.checkRequest(limit, &filter); err != nil {
		return nil, err
	}
	key := cacheKey(models.ModeTrending, 0, limit, &filter)
	return s.serve(ctx, models.ModeTrending, key, s.trending(limit, filter))
}

// RefreshTrending recomputes the trending list and overwrites its cache
// entry. The trending warmer calls it on an interval.
func (s *Service) RefreshTrending(ctx context.Context, limit int, filter models.CandidateFilter) (int, error) {
	if err := s.checkRequest(limit, &filter); err != nil {
		return 0, err
	}
	out, _, err := s.trending(limit, filter)(ctx)
	if err != nil {
		return 0, err
	}
	s.storeCached(ctx, models.ModeTrending, cacheKey(models.ModeTrending, 0, limit, &filter), out)
	return len(out), nil
}

func (s *Service) trending(limit int, filter models.CandidateFilter) computeFunc {
	// A candidate cap must not cut an old but popular listing.
	filter.Order = models.OrderPopular
	return func(ctx context.Context) ([]models.ScoredCandidate, int, error) {
		candidates, err := s.loadCandidates(ctx, filter)
		if err != nil {
			return nil, 0, err
		}

		scored := make([]models.ScoredCandidate, 0, len(candidates))
		for i := range candidates {
			scored = append(scored, models.ScoredCandidate{
				Property: candidates[i],
				Score:    Trending(&candidates[i]),
				Mode:     models.ModeTrending,
			})
		}

		out, err := Assemble(scored, limit, nil)
		if err != nil {
			return nil, 0, err
		}
		if s.cfg.NormalizeTrending {
			normalizeScores(out)
		}
		return out, len(candidates), nil
	}
}

// GetSimilarProperties ranks available properties by attribute overlap with
// propertyID. The reference itself is never returned; an unknown reference
// fails with featurestore.ErrNotFound.
func (s *Service) GetSimilarProperties(ctx context.Context, propertyID int64, limit int) ([]models.ScoredCandidate, error) {
	if propertyID <= 0 {
		return nil, invalidArgument("property id must be positive, got %d", propertyID)
	}
	var filter models.CandidateFilter
	if err := s.checkRequest(limit, &filter); err != nil {
		return nil, err
	}

	key := cacheKey(models.ModeSimilar, propertyID, limit, &filter)
	return s.serve(ctx, models.ModeSimilar, key, func(ctx context.Context) ([]models.ScoredCandidate, int, error) {
		var (
			ref        *models.Property
			candidates []models.Property
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			p, err := s.store.LoadProperty(gctx, propertyID)
			if err != nil {
				return fmt.Errorf("load reference property %d: %w", propertyID, err)
			}
			ref = p
			return nil
		})
		g.Go(func() error {
			var err error
			candidates, err = s.loadCandidates(gctx, filter)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}

		scored := make([]models.ScoredCandidate, 0, len(candidates))
		for i := range candidates {
			scored = append(scored, models.ScoredCandidate{
				Property: candidates[i],
				Score:    Similarity(ref, &candidates[i]),
				Mode:     models.ModeSimilar,
			})
		}

		threshold := s.cfg.SimilarityThreshold
		out, err := Assemble(scored, limit, func(c *models.ScoredCandidate) bool {
			return c.Property.ID != ref.ID && c.Score > threshold
		})
		return out, len(candidates), err
	})
}

// SetAvailability changes a property's status and drops every cached list,
// since any of them may contain the property.
func (s *Service) SetAvailability(ctx context.Context, propertyID int64, status models.Availability) error {
	if !status.Valid() {
		return invalidArgument("unknown availability status %q", status)
	}
	if err := s.store.SetAvailability(ctx, propertyID, status); err != nil {
		return fmt.Errorf("set availability of property %d: %w", propertyID, err)
	}
	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to clear recommendation cache")
		}
	}
	return nil
}

func (s *Service) checkRequest(limit int, filter *models.CandidateFilter) error {
	if limit <= 0 {
		return invalidArgument("limit must be positive, got %d", limit)
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if filter.MaxCandidates == 0 {
		filter.MaxCandidates = s.cfg.MaxCandidates
	}
	return nil
}

// loadCandidates fetches available candidates and applies the operator rule.
// A candidate the rule cannot evaluate is skipped.
func (s *Service) loadCandidates(ctx context.Context, filter models.CandidateFilter) ([]models.Property, error) {
	candidates, err := s.store.LoadCandidateProperties(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if s.rule == nil {
		return candidates, nil
	}

	kept := candidates[:0]
	for i := range candidates {
		ok, err := s.rule.Allows(&candidates[i])
		if err != nil {
			s.logger.Warn().Err(err).Int64("property_id", candidates[i].ID).Msg("candidate rule failed")
			continue
		}
		if ok {
			kept = append(kept, candidates[i])
		}
	}
	return kept, nil
}

type computeFunc func(ctx context.Context) ([]models.ScoredCandidate, int, error)

// serve answers from cache when the cached list is still fully available,
// otherwise computes, records metrics and caches the result.
func (s *Service) serve(ctx context.Context, mode models.Mode, key string, compute computeFunc) ([]models.ScoredCandidate, error) {
	start := time.Now()
	logger := logging.CtxWith(ctx, s.logger).With().Str("mode", string(mode)).Logger()

	if out, ok := s.lookupCached(ctx, mode, key, logger); ok {
		return out, nil
	}

	out, candidates, err := compute(ctx)
	if err != nil {
		metrics.RecordRecommendationError(string(mode), errorKind(err))
		logger.Debug().Err(err).Msg("recommendation failed")
		return nil, err
	}

	metrics.RecordRecommendation(string(mode), time.Since(start), candidates, len(out))
	s.storeCached(ctx, mode, key, out)

	logger.Debug().
		Int("candidates", candidates).
		Int("results", len(out)).
		Dur("duration", time.Since(start)).
		Msg("recommendations computed")
	return out, nil
}

func (s *Service) lookupCached(ctx context.Context, mode models.Mode, key string, logger zerolog.Logger) ([]models.ScoredCandidate, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Msg("cache read failed")
		return nil, false
	}
	metrics.RecordCacheLookup(string(mode), ok)
	if !ok {
		return nil, false
	}

	var out []models.ScoredCandidate
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn().Err(err).Msg("dropping undecodable cache entry")
		s.dropCached(ctx, key, logger)
		return nil, false
	}
	if out == nil {
		out = []models.ScoredCandidate{}
	}

	if !s.stillAvailable(ctx, out, logger) {
		metrics.RecordCacheStale(string(mode))
		s.dropCached(ctx, key, logger)
		return nil, false
	}

	logger.Debug().Int("results", len(out)).Msg("cache hit")
	return out, true
}

// stillAvailable reports whether every cached property is still listed.
// A failed availability read counts as stale so the caller recomputes and
// surfaces the store error.
func (s *Service) stillAvailable(ctx context.Context, list []models.ScoredCandidate, logger zerolog.Logger) bool {
	if len(list) == 0 {
		return true
	}
	ids := make([]int64, len(list))
	for i := range list {
		ids[i] = list[i].Property.ID
	}

	status, err := s.store.LoadAvailability(ctx, ids)
	if err != nil {
		logger.Debug().Err(err).Msg("cache revalidation failed")
		return false
	}
	for _, id := range ids {
		if status[id] != models.AvailabilityAvailable {
			return false
		}
	}
	return true
}

func (s *Service) storeCached(ctx context.Context, mode models.Mode, key string, out []models.ScoredCandidate) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(out)
	if err != nil {
		s.logger.Warn().Err(err).Str("mode", string(mode)).Msg("cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("mode", string(mode)).Msg("cache write failed")
	}
}

func (s *Service) dropCached(ctx context.Context, key string, logger zerolog.Logger) {
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Msg("cache delete failed")
	}
}

// cacheKey identifies a response: rec:<mode>:<user or reference>:<limit>:<filter>.
func cacheKey(mode models.Mode, subject int64, limit int, filter *models.CandidateFilter) string {
	return "rec:" + string(mode) + ":" + strconv.FormatInt(subject, 10) + ":" +
		strconv.Itoa(limit) + ":" + filter.CacheKey()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, featurestore.ErrNotFound):
		return "not_found"
	case errors.Is(err, featurestore.ErrStoreUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}
