package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"skilltrack/internal/metrics"
	"skilltrack/internal/models"
	"skilltrack/internal/progression"
)

// maxParallelCategories bounds concurrent category computations in AllProgress
const maxParallelCategories = 4

// ProgressService computes category progress meters for a user
type ProgressService struct {
	catalogRepo catalogStore
	ratingRepo  ratingStore
	cache       ProgressCache
	metrics     *metrics.Metrics
}

// NewProgressService creates a new progress service. cache may be nil.
func NewProgressService(catalogRepo catalogStore, ratingRepo ratingStore, cache ProgressCache, m *metrics.Metrics) *ProgressService {
	return &ProgressService{
		catalogRepo: catalogRepo,
		ratingRepo:  ratingRepo,
		cache:       cache,
		metrics:     m,
	}
}

// CategoryProgress returns the user's progress in one category
func (s *ProgressService) CategoryProgress(ctx context.Context, userID, categoryID uint) (*progression.Progress, error) {
	category, err := s.catalogRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return s.compute(ctx, userID, categoryID)
}

// AllProgress returns the user's progress in every category, in category order
func (s *ProgressService) AllProgress(ctx context.Context, userID uint) ([]progression.Progress, error) {
	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]progression.Progress, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelCategories)
	for i, c := range categories {
		g.Go(func() error {
			p, err := s.compute(gctx, userID, c.ID)
			if err != nil {
				return fmt.Errorf("category %d: %w", c.ID, err)
			}
			results[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *ProgressService) compute(ctx context.Context, userID, categoryID uint) (*progression.Progress, error) {
	generation, cached := s.fromCache(ctx, userID, categoryID)
	if cached != nil {
		return cached, nil
	}

	var (
		skills    []models.Skill
		subskills []models.Subskill
		ratings   []models.EmployeeRating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skills, err = s.catalogRepo.ListSkills(gctx, categoryID)
		return err
	})
	g.Go(func() error {
		var err error
		subskills, err = s.catalogRepo.ListSubskills(gctx, categoryID)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.ratingRepo.ListByUser(gctx, userID, categoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p, err := progression.ComputeProgress(categoryID, toProgressionSkills(skills), toProgressionSubskills(subskills), toRecords(ratings))
	if err != nil {
		return nil, err
	}
	s.metrics.ProgressComputed.Inc()

	if s.cache != nil && generation != "" {
		if _, err := s.cache.Set(ctx, userID, generation, p); err != nil {
			slog.Warn("Failed to cache progress", "user_id", userID, "category_id", categoryID, "error", err)
		}
	}
	return &p, nil
}

// fromCache returns a cached result, or the generation to store a fresh one under.
// An empty generation means the result must not be cached.
func (s *ProgressService) fromCache(ctx context.Context, userID, categoryID uint) (string, *progression.Progress) {
	if s.cache == nil {
		return "", nil
	}

	generation, err := s.cache.Generation(ctx, userID)
	if err != nil {
		s.metrics.ProgressCacheTotal.WithLabelValues("error").Inc()
		slog.Warn("Progress cache unavailable", "user_id", userID, "error", err)
		return "", nil
	}

	p, ok, err := s.cache.Get(ctx, userID, categoryID)
	switch {
	case err != nil:
		s.metrics.ProgressCacheTotal.WithLabelValues("error").Inc()
		slog.Warn("Failed to read cached progress", "user_id", userID, "category_id", categoryID, "error", err)
	case ok:
		s.metrics.ProgressCacheTotal.WithLabelValues("hit").Inc()
		return generation, p
	default:
		s.metrics.ProgressCacheTotal.WithLabelValues("miss").Inc()
	}
	return generation, nil
}

func toProgressionSkills(skills []models.Skill) []progression.Skill {
	out := make([]progression.Skill, len(skills))
	for i, s := range skills {
		out[i] = progression.Skill{ID: s.ID, CategoryID: s.CategoryID}
	}
	return out
}

func toProgressionSubskills(subskills []models.Subskill) []progression.Subskill {
	out := make([]progression.Subskill, len(subskills))
	for i, s := range subskills {
		out[i] = progression.Subskill{ID: s.ID, SkillID: s.SkillID}
	}
	return out
}

func toRecords(ratings []models.EmployeeRating) []progression.Record {
	out := make([]progression.Record, len(ratings))
	for i := range ratings {
		out[i] = ratings[i].Record()
	}
	return out
}
