package service

import (
	"context"

	"skilltrack/internal/models"
)

// CatalogService exposes the skill catalog
type CatalogService struct {
	catalogRepo catalogStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo catalogStore) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// ListCategories returns every category
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.SkillCategory, error) {
	return s.catalogRepo.ListCategories(ctx)
}

// CategorySkills returns the skills of a category with their subskills
func (s *CatalogService) CategorySkills(ctx context.Context, categoryID uint) ([]models.SkillWithSubskills, error) {
	category, err := s.catalogRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return s.catalogRepo.ListSkillsWithSubskills(ctx, categoryID)
}
